package company

import (
	"go-comdir/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	companies := r.Group("/companies")
	companies.Use(middleware.ContextLogger(logger))
	{
		companies.POST("", middleware.RateLimitByIP(10, 30), handler.List)
		companies.GET("/all", handler.GetOptions)
		companies.GET("/:id", handler.GetByID)
		companies.POST("/create", middleware.RateLimitByIP(1, 5), handler.Create)
		companies.PATCH("/:id", handler.Update)
		companies.DELETE("/:id", middleware.RateLimitByIP(1, 3), handler.Delete)
		companies.POST("/:id/users", middleware.RateLimitByIP(1, 5), handler.AddUser)
		companies.DELETE("/:id/users", handler.RemoveUser)
	}
}

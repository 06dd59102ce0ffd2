package user

import (
	"go-comdir/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	users := r.Group("/users")
	users.Use(middleware.ContextLogger(logger))
	{
		users.POST("", middleware.RateLimitByIP(10, 30), handler.List)
		users.GET("/:id", handler.GetByID)
		users.POST("/add", middleware.RateLimitByIP(1, 5), handler.Create)
		users.PATCH("/:id", handler.Update)
		users.PATCH("/:id/migrate", handler.Migrate)
		users.PATCH("/:id/deactivate", handler.Deactivate)
		users.DELETE("/:id", middleware.RateLimitByIP(1, 3), handler.Delete)
	}
}

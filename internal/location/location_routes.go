package location

import (
	"go-comdir/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, logger *zap.Logger) {
	locations := r.Group("/locations")
	locations.Use(middleware.ContextLogger(logger))
	{
		locations.GET("/countries", handler.GetCountries)
		locations.GET("/states/:countryId", handler.GetStates)
		locations.GET("/cities/:stateId", handler.GetCities)
	}
}

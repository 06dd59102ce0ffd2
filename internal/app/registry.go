package app

import (
	"go-comdir/internal/company"
	"go-comdir/internal/geocode"
	"go-comdir/internal/location"
	"go-comdir/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	geocoder geocode.Resolver,
	logger *zap.Logger,
) {
	// --- Repositories ---
	companyRepo := company.NewRepository(db)
	userRepo := user.NewRepository(db)
	locationRepo := location.NewRepository(db)

	// --- Services ---
	companyService := company.NewService(db, companyRepo, userRepo, geocoder, rdb, logger)
	userService := user.NewService(userRepo, logger)
	locationService := location.NewService(locationRepo, logger)

	// --- Handlers ---
	companyHandler := company.NewHandler(companyService, logger)
	userHandler := user.NewHandler(userService, logger)
	locationHandler := location.NewHandler(locationService, logger)

	// --- Routes Registration ---
	api := router.Group("/api")
	{
		company.RegisterRoutes(api, companyHandler, logger)
		user.RegisterRoutes(api, userHandler, logger)
		location.RegisterRoutes(api, locationHandler, logger)
	}
}

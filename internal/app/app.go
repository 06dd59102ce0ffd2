package app

import (
	"net/http"
	"os"

	"go-comdir/internal/geocode"
	"go-comdir/internal/shared/connection"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	db, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	geocoder := geocode.NewClient(os.Getenv("GEOCODER_BASE_URL"), logger)

	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Company User Management API")
	})

	registerModules(router, db, redisClient, geocoder, logger)

	return nil
}

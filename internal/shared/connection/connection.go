package connection

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const retryInterval = 5 * time.Second

// ConnectGORMWithRetry dials postgres through gorm, retrying on a fixed
// interval until the database answers a ping or the attempts run out.
func ConnectGORMWithRetry(
	host, user, password, dbname, port, sslmode string,
	maxRetries int,
) (*gorm.DB, error) {
	l := zap.L().Named("connection")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		host, user, password, dbname, port, sslmode,
	)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		db, err := openAndPing(dsn)
		if err != nil {
			lastErr = err
			l.Warn("database not ready",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
			)
			time.Sleep(retryInterval)
			continue
		}

		l.Info("database connected")
		return db, nil
	}

	return nil, fmt.Errorf("database connection failed after %d retries: %w", maxRetries, lastErr)
}

func openAndPing(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// ConnectRedisWithRetry pings Redis on the same fixed interval. The returned
// client is the one that answered the successful ping.
func ConnectRedisWithRetry(addr string, maxRetries int) (*redis.Client, error) {
	l := zap.L().Named("connection")

	rdb := redis.NewClient(&redis.Options{Addr: addr})

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			lastErr = err
			l.Warn("redis not ready",
				zap.Int("attempt", attempt),
				zap.Int("max_retries", maxRetries),
				zap.Error(err),
			)
			time.Sleep(retryInterval)
			continue
		}

		l.Info("redis connected", zap.String("addr", addr))
		return rdb, nil
	}

	return nil, fmt.Errorf("redis connection failed after %d retries: %w", maxRetries, lastErr)
}

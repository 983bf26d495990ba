package app

import (
	"context"
	"time"

	"go-taxcalc/internal/history"
	"go-taxcalc/internal/messaging/kafka"
	"go-taxcalc/internal/middleware"
	"go-taxcalc/internal/shared/connection"
	"go-taxcalc/internal/taxrates"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BuildApp connects the infrastructure and registers every route on router.
func BuildApp(router *gin.Engine, cfg Config, rates *taxrates.RateTable) error {
	logger := zap.L().Named("app")

	router.Use(middleware.RequestID(), cors.New(corsConfig(cfg.CORSAllowedOrigins)))

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 5)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if err := gormDB.AutoMigrate(&history.Calculation{}); err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := kafka.EnsureSchema(ctx, sqlDB); err != nil {
		return err
	}

	redisClient, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	registerModules(router, sqlDB, gormDB, redisClient, rates)
	return nil
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "Idempotency-Key", "X-Request-ID"}
	c.ExposeHeaders = []string{"X-Request-ID", "Idempotent-Replayed"}
	c.MaxAge = 12 * time.Hour

	if len(origins) == 0 {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}

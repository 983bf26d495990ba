package app

import (
	"database/sql"
	"net/http"

	"go-taxcalc/internal/history"
	"go-taxcalc/internal/messaging/kafka"
	"go-taxcalc/internal/taxcalc"
	"go-taxcalc/internal/taxrates"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	rates *taxrates.RateTable,
) {
	logger := zap.L()

	// --- Repositories ---
	historyRepo := history.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- Services ---
	taxService := taxcalc.NewService(rates)
	historyService := history.NewServiceWithOutbox(db, historyRepo, outboxRepo, logger)

	// --- Handlers ---
	taxHandler := taxcalc.NewHandler(taxService, logger)
	historyHandler := history.NewHandlerWithRedis(historyService, rdb)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK", "rates_version": rates.Version})
	})

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		taxcalc.RegisterRoutes(api, taxHandler)
		history.RegisterRoutes(api, historyHandler, logger, rdb)
	}
}

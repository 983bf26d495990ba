package main

import (
	"time"

	"go-taxcalc/internal/app"
	"go-taxcalc/internal/bootstrap"
	"go-taxcalc/internal/shared/apperror"
	"go-taxcalc/internal/taxrates"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	cfg := app.LoadConfig()

	rates, err := taxrates.Load(cfg.TaxRatesFile)
	if err != nil {
		logger.Fatal("load tax rates failed", zap.String("file", cfg.TaxRatesFile), zap.Error(err))
	}
	logger.Info("tax rates loaded", zap.String("version", rates.Version))

	r := gin.Default()

	// build dependency + routes
	if err := app.BuildApp(r, cfg, rates); err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		bootstrap.NewStdoutAuditLogger(logger),
	)
}

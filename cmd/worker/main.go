package main

import (
	"go-taxcalc/internal/app"

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

	if err := app.RunWorker(app.LoadConfig()); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}

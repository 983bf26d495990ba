package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"go-taxcalc/internal/messaging/kafka"
	"go-taxcalc/internal/messaging/kafka/producer"
	"go-taxcalc/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker drains the outbox to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, 5)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, 5)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := kafka.EnsureSchema(ctx, sqlDB); err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, 3*time.Second)
	}()

	<-ctx.Done()
	logger.Info("worker shutting down")
	<-done

	return nil
}

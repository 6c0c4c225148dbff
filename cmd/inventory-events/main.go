package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"inventory/internal/config"
	"inventory/pkg/logger"
	"inventory/pkg/rabbitmq"
)

// inventory-events logs every inventory change event published by the API.
func main() {
	cfg, err := config.Load()
	bootLog := logger.New(logger.Options{ServiceName: "inventory-events"})
	if err != nil {
		bootLog.Fatalf("invalid configuration: %v", err)
	}
	if cfg.RabbitMQ.URL == "" {
		bootLog.Fatalf("RABBITMQ_URL is required")
	}

	log := logger.New(logger.Options{
		ServiceName: "inventory-events",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
	})

	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL, Queue: cfg.RabbitMQ.Queue})
	if err != nil {
		log.Fatalf("failed to initialize RabbitMQ client: %v", err)
	}
	defer mqClient.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info(log.WithField(ctx, "queue", mqClient.Queue()), "waiting for inventory events")

	err = mqClient.ConsumeInventoryEvents(ctx, func(evt rabbitmq.Event) error {
		log.Info(log.WithFields(ctx, map[string]any{
			"event_id":    evt.ID,
			"event_type":  evt.Type,
			"resource_id": evt.ResourceID,
			"occurred_at": evt.OccurredAt,
		}), "inventory event received")
		return nil
	})
	if err != nil {
		log.Error(ctx, "consumer stopped", err)
		stop()
		mqClient.Close()
		os.Exit(1)
	}
	log.Info(ctx, "consumer stopped")
}

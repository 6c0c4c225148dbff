package services

import (
	"context"

	"inventory/pkg/logger"
	"inventory/pkg/rabbitmq"
)

// EventPublisher delivers inventory change events. *rabbitmq.Client
// implements it.
type EventPublisher interface {
	PublishInventoryEvent(ctx context.Context, evt rabbitmq.Event) error
}

// notifier publishes events on behalf of a service. A failed publish is
// logged and never reaches the caller.
type notifier struct {
	events EventPublisher
	log    *logger.Logger
}

func (n notifier) publish(ctx context.Context, eventType string, resourceID int64, data any) {
	if n.events == nil {
		return
	}
	evt := rabbitmq.NewEvent(eventType, resourceID, data)
	if err := n.events.PublishInventoryEvent(ctx, evt); err != nil {
		n.log.Error(n.log.WithFields(ctx, map[string]any{
			"event_type":  eventType,
			"event_id":    evt.ID,
			"resource_id": resourceID,
		}), "failed to publish inventory event", err)
	}
}

func orNop(log *logger.Logger) *logger.Logger {
	if log == nil {
		return logger.Nop()
	}
	return log
}

package rabbitmq

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Inventory event types.
const (
	ProductCreated  = "product.created"
	ProductUpdated  = "product.updated"
	ProductDeleted  = "product.deleted"
	SupplierCreated = "supplier.created"
	SupplierUpdated = "supplier.updated"
	SupplierDeleted = "supplier.deleted"
)

// Event is the message body published after every successful write.
type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ResourceID int64     `json:"resource_id"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewEvent stamps a fresh event id and the current UTC time.
func NewEvent(eventType string, resourceID int64, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		ResourceID: resourceID,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

// DecodeEvent parses a delivered message body. Data is left as decoded JSON.
func DecodeEvent(body []byte) (Event, error) {
	var evt Event
	if err := json.Unmarshal(body, &evt); err != nil {
		return Event{}, fmt.Errorf("failed to decode inventory event: %w", err)
	}
	if evt.Type == "" {
		return Event{}, fmt.Errorf("inventory event %q has no type", evt.ID)
	}
	return evt, nil
}

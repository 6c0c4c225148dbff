package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/streadway/amqp"
)

// DefaultQueue receives inventory events when Config.Queue is empty.
const DefaultQueue = "inventory_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the durable
// event queue.
func NewClient(cfg Config) (*Client, error) {
	queue := cfg.Queue
	if queue == "" {
		queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareQueue(ch, queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	return &Client{
		conn:    conn,
		channel: ch,
		queue:   queue,
	}, nil
}

func declareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare %s: %w", queue, err)
	}
	return nil
}

// Queue returns the name of the declared event queue.
func (c *Client) Queue() string {
	return c.queue
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishInventoryEvent publishes evt as a persistent JSON message on the
// event queue.
func (c *Client) PublishInventoryEvent(ctx context.Context, evt Event) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal inventory event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    evt.ID,
			Type:         evt.Type,
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}
	return nil
}

// ConsumeInventoryEvents delivers every message on the event queue to
// handler until ctx is done or the channel closes. Messages that fail to
// decode are dropped; handler errors requeue the message once.
func (c *Client) ConsumeInventoryEvents(ctx context.Context, handler func(Event) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("RabbitMQ delivery channel closed")
			}
			if err := handleDelivery(msg, handler); err != nil {
				return err
			}
		}
	}
}

func handleDelivery(msg amqp.Delivery, handler func(Event) error) error {
	evt, err := DecodeEvent(msg.Body)
	if err != nil {
		if nackErr := msg.Nack(false, false); nackErr != nil {
			return fmt.Errorf("failed to nack message %d: %w", msg.DeliveryTag, nackErr)
		}
		return nil
	}

	if err := handler(evt); err != nil {
		// redelivered messages are not requeued again
		if nackErr := msg.Nack(false, !msg.Redelivered); nackErr != nil {
			return fmt.Errorf("failed to nack message %d: %w", msg.DeliveryTag, nackErr)
		}
		return nil
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		return fmt.Errorf("failed to ack message %d: %w", msg.DeliveryTag, ackErr)
	}
	return nil
}

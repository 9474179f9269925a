// Package rabbitmq publishes and consumes feedback board domain events.
package rabbitmq

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"feedbackboard/internal/logger"

	amqp "github.com/streadway/amqp"
)

const (
	// Exchange is the topic exchange every domain event is published to.
	Exchange = "feedback_events"
	// AuditQueue receives a copy of every event for the audit log.
	AuditQueue = "feedback_audit"
)

// Channel is the subset of *amqp.Channel the client uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel Channel
	mu      sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ and declares the event topology.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	client, err := NewClientWithChannel(ch)
	if err != nil {
		conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

// NewClientWithChannel declares the event topology on an open channel.
func NewClientWithChannel(ch Channel) (*Client, error) {
	if err := declare(ch); err != nil {
		ch.Close()
		return nil, err
	}
	logger.Log.Infow("rabbitmq topology declared", "exchange", Exchange, "queue", AuditQueue)
	return &Client{channel: ch}, nil
}

func declare(ch Channel) error {
	if err := ch.ExchangeDeclare(Exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare %s: %w", Exchange, err)
	}
	if _, err := ch.QueueDeclare(AuditQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare %s: %w", AuditQueue, err)
	}
	if err := ch.QueueBind(AuditQueue, "#", Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind %s: %w", AuditQueue, err)
	}
	return nil
}

// Close closes the channel and the connection.
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
		return fmt.Errorf("errors closing RabbitMQ client: %v", errs)
	}
	return nil
}

// Publish sends payload as a persistent JSON message with the given routing key.
func (c *Client) Publish(routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(Exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	logger.Log.Debugw("event published", "event", routingKey)
	return nil
}

// ConsumeEvents delivers audit queue messages to handler in a goroutine.
// A message is acked when handler succeeds and dropped otherwise.
func (c *Client) ConsumeEvents(handler func(msg amqp.Delivery) error) error {
	msgs, err := c.channel.Consume(AuditQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			handle(msg, handler)
		}
		logger.Log.Infow("event consumer stopped", "queue", AuditQueue)
	}()
	return nil
}

func handle(msg amqp.Delivery, handler func(msg amqp.Delivery) error) {
	if err := handler(msg); err != nil {
		logger.Log.Warnw("failed to process event", "tag", msg.DeliveryTag, "event", msg.RoutingKey, "error", err)
		// Requeueing a message the handler rejected would loop forever.
		if err := msg.Nack(false, false); err != nil {
			logger.Log.Errorw("failed to nack event", "tag", msg.DeliveryTag, "error", err)
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		logger.Log.Errorw("failed to ack event", "tag", msg.DeliveryTag, "error", err)
	}
}

// AuditEvent logs a domain event. Bodies that are not JSON objects are rejected.
func AuditEvent(msg amqp.Delivery) error {
	var payload map[string]interface{}
	if err := json.Unmarshal(msg.Body, &payload); err != nil {
		return fmt.Errorf("invalid event body: %w", err)
	}
	logger.Log.Infow("audit", "event", msg.RoutingKey, "payload", payload, "at", msg.Timestamp)
	return nil
}

package queue

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"buzzline/pkg/config"
	"buzzline/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventQueueName  = "notification_events"
	EventExchange   = "notifications"
	EventRoutingKey = "notification.event"
)

// ErrRejected marks an event as permanently unprocessable (malformed or of an
// unknown type). The consumer drops such events instead of requeueing them.
var ErrRejected = errors.New("event rejected")

// Client consumes platform events (likes, follows, messages) that the other
// services publish, so they can be turned into stored notifications.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EventExchange, // name
		"direct",      // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		EventQueueName, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		amqp.Table{
			"x-max-priority": 10,
		},
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		EventQueueName,
		EventRoutingKey,
		EventExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEvent publishes a notification event to the queue with priority.
// Producers on other services enqueue platform events here; the seeder uses it
// to feed the consumer demo events.
func (c *Client) PublishEvent(event map[string]interface{}) error {
	priority := 1
	if p, ok := event["priority"].(int); ok {
		priority = p
		if priority < 0 {
			priority = 0
		}
		if priority > 10 {
			priority = 10
		}
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		EventExchange,
		EventRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         eventJSON,
			Priority:     uint8(priority),
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("Failed to publish event to exchange=%s: %v", EventExchange, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// ConsumeEvents delivers queued notification events to the handler. Transient
// handler failures are requeued; undecodable events and events the handler
// rejects as permanently invalid (ErrRejected) are dropped.
func (c *Client) ConsumeEvents(handler func(event map[string]interface{}) error) error {
	msgs, err := c.channel.Consume(
		EventQueueName,
		"",    // consumer
		false, // auto-ack (we ack after processing)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("Started consuming from queue: %s", EventQueueName)

	go func() {
		for msg := range msgs {
			var event map[string]interface{}
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("Failed to unmarshal event: %v, body=%s", err, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(event); err != nil {
				if errors.Is(err, ErrRejected) {
					c.logger.Error("Dropping rejected event: %v, event=%+v", err, event)
					msg.Nack(false, false)
					continue
				}
				c.logger.Error("Handler failed to process event, requeueing: %v, event=%+v", err, event)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}

// GetQueueLength returns the number of messages waiting in the event queue.
func (c *Client) GetQueueLength() (int, error) {
	queue, err := c.channel.QueueInspect(EventQueueName)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect queue: %w", err)
	}
	return queue.Messages, nil
}

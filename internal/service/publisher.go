package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/fyyur-directory/internal/queue"
)

// EventPublisher delivers listing events after their change commits.
type EventPublisher interface {
	PublishListing(ctx context.Context, ev queue.ListingEvent) error
}

// AMQPPublisher publishes listing events to a durable RabbitMQ queue,
// dialling once per message.
type AMQPPublisher struct {
	url   string
	queue string
}

// NewAMQPPublisher builds a publisher for queueName on the broker at url.
func NewAMQPPublisher(url, queueName string) *AMQPPublisher {
	return &AMQPPublisher{url: url, queue: queueName}
}

// PublishListing sends ev as a persistent JSON message routed to the
// queue through the default exchange.
func (p *AMQPPublisher) PublishListing(ctx context.Context, ev queue.ListingEvent) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("rabbitmq: dial: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("rabbitmq: channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("rabbitmq: queue declare: %w", err)
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}
	return nil
}

// NopPublisher drops every event.  It stands in when no broker is
// configured.
type NopPublisher struct{}

// PublishListing implements EventPublisher.
func (NopPublisher) PublishListing(context.Context, queue.ListingEvent) error { return nil }

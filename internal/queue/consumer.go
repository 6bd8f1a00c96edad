// Package queue contains the background consumer that listens to the
// listing events queue and appends one line per event to a log file.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Consumer drains the listing queue into a logrus logger whose output is
// the listing log file.
type Consumer struct {
	url     string
	queue   string
	logFile string
	log     *logrus.Logger
}

// NewConsumer builds a consumer.  log reports broker problems; events go
// to logFile.
func NewConsumer(url, queueName, logFile string, log *logrus.Logger) *Consumer {
	return &Consumer{url: url, queue: queueName, logFile: logFile, log: log}
}

// Run connects to RabbitMQ, declares the queue (durable) and consumes
// until ctx is cancelled.  Lost connections are redialled with
// exponential backoff capped at 30s.
func (c *Consumer) Run(ctx context.Context) error {
	events, closer, err := openEventLog(c.logFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.WithError(err).Warnf("listing-consumer: failed to dial broker; retrying in %s", backoff)
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		err = c.consumeLoop(ctx, conn, events)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.WithError(err).Warn("listing-consumer: consume loop ended; reconnecting")
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection, events *logrus.Logger) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.WithError(err).Warn("listing-consumer: set QoS failed")
	}

	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := HandleMessage(events, d.Body); err != nil {
				c.log.WithError(err).Error("listing-consumer: handle message failed")
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event and writes it to events.
func HandleMessage(events *logrus.Logger, body []byte) error {
	var ev ListingEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.Kind == "" || ev.Action == "" {
		return fmt.Errorf("event %q: missing kind or action", ev.EventID)
	}

	fields := logrus.Fields{
		"event_id":    ev.EventID,
		"kind":        ev.Kind,
		"action":      ev.Action,
		"occurred_at": ev.OccurredAt,
	}
	if ev.ID != 0 {
		fields["id"] = ev.ID
	}
	if ev.Name != "" {
		fields["name"] = ev.Name
	}
	if ev.Kind == KindShow {
		fields["venue_id"] = ev.VenueID
		fields["artist_id"] = ev.ArtistID
		fields["start_time"] = ev.StartTime
	}
	events.WithFields(fields).Infof("%s %s", ev.Kind, ev.Action)
	return nil
}

// openEventLog returns a logger appending to path, creating its
// directory as needed.
func openEventLog(path string) (*logrus.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("mkdir logs: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return l, f, nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

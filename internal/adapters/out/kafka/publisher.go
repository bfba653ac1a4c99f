// Package kafka announces domain events on a Kafka topic. Each event becomes
// one message keyed by its aggregate id, so all changes of one order land in
// one partition in commit order.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"forwarding/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

var _ ports.EventPublisher = &Publisher{}

const (
	headerEventName   = "event-name"
	headerContentType = "content-type"
)

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	w      messageWriter
	logger *slog.Logger
}

// NewPublisher connects to a comma separated broker list.
func NewPublisher(brokers, topic string, logger *slog.Logger) *Publisher {
	return NewPublisherWithWriter(NewWriter(brokers, topic), logger)
}

// NewWriter builds the topic writer. The hash balancer maps equal keys to
// the same partition.
func NewWriter(brokers, topic string) *kafka.Writer {
	addrs := strings.Split(brokers, ",")
	for i := range addrs {
		addrs[i] = strings.TrimSpace(addrs[i])
	}

	return &kafka.Writer{
		Addr:         kafka.TCP(addrs...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		Async:        false,
		BatchTimeout: 10 * time.Millisecond,
	}
}

func NewPublisherWithWriter(w messageWriter, logger *slog.Logger) *Publisher {
	return &Publisher{w: w, logger: logger.With("component", "kafka-publisher")}
}

func (p *Publisher) Publish(ctx context.Context, events ...ports.Event) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		value, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s: %w", e.EventName(), err)
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(e.AggregateID()),
			Value: value,
			Time:  e.OccurredAt(),
			Headers: []kafka.Header{
				{Key: headerEventName, Value: []byte(e.EventName())},
				{Key: headerContentType, Value: []byte("application/json")},
			},
		})
	}

	if err := p.w.WriteMessages(ctx, msgs...); err != nil {
		p.logger.ErrorContext(ctx, "failed to publish events",
			"count", len(msgs),
			"first_event", events[0].EventName(),
			"aggregate_id", events[0].AggregateID(),
			"error", err)
		return fmt.Errorf("publish %d events: %w", len(msgs), err)
	}

	p.logger.DebugContext(ctx, "events published", "count", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}

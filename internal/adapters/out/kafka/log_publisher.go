package kafka

import (
	"context"
	"log/slog"

	"forwarding/internal/core/ports"
)

var _ ports.EventPublisher = &LogPublisher{}

// LogPublisher stands in when no brokers are configured. It only logs.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With("component", "log-publisher")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...ports.Event) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "domain event",
			"event", e.EventName(),
			"aggregate_id", e.AggregateID(),
			"occurred_at", e.OccurredAt())
	}
	return nil
}

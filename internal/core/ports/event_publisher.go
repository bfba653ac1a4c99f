package ports

import (
	"context"
	"time"
)

// Event is a domain event announced after a successful commit.
type Event interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, events ...Event) error
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// publish announces committed changes. The change is already durable, so a
// delivery failure is left to the publisher to log.
func publish(ctx context.Context, publisher ports.EventPublisher, events ...ports.Event) {
	if publisher == nil || len(events) == 0 {
		return
	}
	_ = publisher.Publish(ctx, events...)
}

// loadVisibleOrder hides other customers' orders behind NotFound.
func loadVisibleOrder(
	ctx context.Context,
	repo ports.OrderRepository,
	actor access.Actor,
	id kernel.UUID,
) (*order.Order, error) {
	o, err := repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !o.VisibleTo(actor) {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return o, nil
}

// requireReference turns a missing referenced entity into a validation error
// of the field that referenced it.
func requireReference(field string, err error) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return errs.NewValueIsInvalidErrorWithCause(field, fmt.Errorf("refers to an unknown entity: %w", err))
	}
	return err
}

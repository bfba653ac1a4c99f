package commands

import (
	"context"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
)

// TransitionOrderStatusCommandHandler moves an order to its next stage.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
}

// NewTransitionOrderStatusCommandHandler wires the handler to its dependencies.
func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
) TransitionOrderStatusCommandHandler {
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
	}
}

// Handle moves the order one edge along the stage graph.
//
// Errors:
//   - ObjectNotFoundError when the order does not exist or is not the caller's
//   - ForbiddenError when the caller's role may not perform the move
//   - InvalidTransitionError when target is not a direct successor
//   - ConflictError when another writer changed the order concurrently
func (h TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := loadVisibleOrder(ctx, orderRepo, cmd.Actor(), cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = access.Require(cmd.Actor(), o.TransitionAction(cmd.Actor(), cmd.Target())); err != nil {
		return nil, err
	}

	now := h.clock.Now()
	from, err := o.TransitionTo(cmd.Target(), now)
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publish(ctx, h.publisher, order.StatusChanged{
		OrderID:   o.ID(),
		OwnerID:   o.OwnerID(),
		From:      from.String(),
		To:        o.Status().String(),
		ChangedBy: cmd.Actor().UserID,
		ChangedAt: o.StatusChangedAt(),
	})

	return o, nil
}

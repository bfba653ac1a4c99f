package commands

import (
	"context"
	"fmt"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/shelf"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// ShelveOrderCommandHandler places an order on a branch shelf.
type ShelveOrderCommandHandler struct {
	uowFactory OperationsUoWFactory
	clock      ports.Clock
}

// NewShelveOrderCommandHandler wires the handler to its dependencies.
func NewShelveOrderCommandHandler(uowFactory OperationsUoWFactory, clock ports.Clock) ShelveOrderCommandHandler {
	return ShelveOrderCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Handle records that an arrived pickup order was put on a shelf of its
// destination branch. Delivery orders never reach a shelf.
func (h ShelveOrderCommandHandler) Handle(ctx context.Context, cmd ShelveOrderCommand) (*shelf.Placement, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ShelveOrder); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if o.Status() != order.DeliveredOrReadyForPickup {
		return nil, errs.NewConflictError("order", o.ID(), fmt.Sprintf("cannot be shelved in status %s", o.Status()))
	}
	if o.Fulfillment() == order.Delivery {
		return nil, errs.NewConflictError("order", o.ID(), "is delivered to the door and never shelved")
	}

	p, err := shelf.NewPlacement(
		cmd.PlacementID(), o.ID(), o.DestinationBranchID(), cmd.ShelfCode(), cmd.Actor().UserID, h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ShelfRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}

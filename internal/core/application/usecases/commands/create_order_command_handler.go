package commands

import (
	"context"
	"fmt"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// CreateOrderCommandHandler places a new order.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

// NewCreateOrderCommandHandler wires the handler to its dependencies.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

// Handle places a new order. Customers may only place orders for
// themselves; staff may place orders on behalf of anyone.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	actor := cmd.Actor()
	if err := access.Require(actor, access.CreateOrder); err != nil {
		return nil, err
	}
	if !actor.Owns(cmd.OwnerID()) {
		if err := access.Require(actor, access.CreateOrderForUser); err != nil {
			return nil, err
		}
	}

	o, err := order.NewOrder(
		cmd.OrderID(),
		cmd.OwnerID(),
		cmd.Origin(),
		cmd.Destination(),
		cmd.DestinationBranchID(),
		cmd.Fulfillment(),
		cmd.Items(),
		h.clock.Now(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	b, err := uow.BranchRepository().Get(ctx, cmd.DestinationBranchID())
	if err != nil {
		return nil, requireReference("destination_branch_id", err)
	}
	if b.Country() != o.Destination().Country() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"destination_branch_id",
			fmt.Errorf("branch is in %s but the destination is in %s", b.Country(), o.Destination().Country()),
		)
	}

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

package commands

import (
	"context"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/order"
)

// UpdateOrderCommandHandler edits the mutable fields of an order.
type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewUpdateOrderCommandHandler wires the handler to its dependencies.
func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory}
}

// Handle revises a placed order. Once the order reached a branch the edit
// fails with ConflictError so it cannot race with physical handling.
func (h UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	action := access.UpdateAnyOrder
	if cmd.Actor().Owns(o.OwnerID()) {
		action = access.UpdateOwnOrder
	}
	if err = access.Require(cmd.Actor(), action); err != nil {
		return nil, err
	}

	if err = o.Revise(cmd.Items(), cmd.Destination(), cmd.Fulfillment()); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}

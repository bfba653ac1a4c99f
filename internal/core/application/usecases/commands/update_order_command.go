package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrUpdateOrderCommandIsNotConstructed = errors.New(
	"UpdateOrderCommand must be created via NewUpdateOrderCommand constructor",
)

// UpdateOrderCommand is a patch: nil fields keep their current value.
type UpdateOrderCommand struct { //nolint:recvcheck //using for validation
	actor       access.Actor
	orderID     kernel.UUID
	items       []order.Item
	destination *kernel.Address
	fulfillment *order.Fulfillment

	guard guard.ConstructorGuard
}

func NewUpdateOrderCommand(
	actor access.Actor,
	orderID kernel.UUID,
	items []order.Item,
	destination *kernel.Address,
	fulfillment *order.Fulfillment,
) (UpdateOrderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return UpdateOrderCommand{}, err
	}
	if items == nil && destination == nil && fulfillment == nil {
		return UpdateOrderCommand{}, errs.NewValueIsRequiredError("patch")
	}

	return UpdateOrderCommand{
		actor:       actor,
		orderID:     orderID,
		items:       items,
		destination: destination,
		fulfillment: fulfillment,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateOrderCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderCommandIsNotConstructed)
}

func (c UpdateOrderCommand) Actor() access.Actor             { return c.actor }
func (c UpdateOrderCommand) OrderID() kernel.UUID            { return c.orderID }
func (c UpdateOrderCommand) Items() []order.Item             { return c.items }
func (c UpdateOrderCommand) Destination() *kernel.Address    { return c.destination }
func (c UpdateOrderCommand) Fulfillment() *order.Fulfillment { return c.fulfillment }

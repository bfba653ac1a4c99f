package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"
	"forwarding/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor               access.Actor
	orderID             kernel.UUID
	ownerID             kernel.UUID
	origin              kernel.Address
	destination         kernel.Address
	destinationBranchID kernel.UUID
	fulfillment         order.Fulfillment
	items               []order.Item

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	actor access.Actor,
	orderID kernel.UUID,
	ownerID kernel.UUID,
	origin kernel.Address,
	destination kernel.Address,
	destinationBranchID kernel.UUID,
	fulfillment order.Fulfillment,
	items []order.Item,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		origin:      origin,
		destination: destination,
		fulfillment: fulfillment,
		items:       items,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setOwnerID(ownerID),
		cmd.setDestinationBranchID(destinationBranchID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() access.Actor              { return c.actor }
func (c CreateOrderCommand) OrderID() kernel.UUID             { return c.orderID }
func (c CreateOrderCommand) OwnerID() kernel.UUID             { return c.ownerID }
func (c CreateOrderCommand) Origin() kernel.Address           { return c.origin }
func (c CreateOrderCommand) Destination() kernel.Address      { return c.destination }
func (c CreateOrderCommand) DestinationBranchID() kernel.UUID { return c.destinationBranchID }
func (c CreateOrderCommand) Fulfillment() order.Fulfillment   { return c.fulfillment }
func (c CreateOrderCommand) Items() []order.Item              { return c.items }

func (c *CreateOrderCommand) setActor(actor access.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner_id", err)
	}
	c.ownerID = id
	return nil
}

func (c *CreateOrderCommand) setDestinationBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("destination_branch_id", err)
	}
	c.destinationBranchID = id
	return nil
}

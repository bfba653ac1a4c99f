package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/guard"
)

var ErrTransitionOrderStatusCommandIsNotConstructed = errors.New(
	"TransitionOrderStatusCommand must be created via NewTransitionOrderStatusCommand constructor",
)

type TransitionOrderStatusCommand struct {
	actor   access.Actor
	orderID kernel.UUID
	target  order.Status

	guard guard.ConstructorGuard
}

func NewTransitionOrderStatusCommand(
	actor access.Actor,
	orderID kernel.UUID,
	target order.Status,
) (TransitionOrderStatusCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return TransitionOrderStatusCommand{}, err
	}

	return TransitionOrderStatusCommand{
		actor:   actor,
		orderID: orderID,
		target:  target,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderStatusCommandIsNotConstructed)
}

func (c TransitionOrderStatusCommand) Actor() access.Actor  { return c.actor }
func (c TransitionOrderStatusCommand) OrderID() kernel.UUID { return c.orderID }
func (c TransitionOrderStatusCommand) Target() order.Status { return c.target }

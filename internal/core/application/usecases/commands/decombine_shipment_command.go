package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrDecombineShipmentCommandIsNotConstructed = errors.New(
	"DecombineShipmentCommand must be created via NewDecombineShipmentCommand constructor",
)

type DecombineShipmentCommand struct {
	actor      access.Actor
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDecombineShipmentCommand(actor access.Actor, shipmentID kernel.UUID) (DecombineShipmentCommand, error) {
	if err := errors.Join(actor.Validate(), shipmentID.Validate()); err != nil {
		return DecombineShipmentCommand{}, err
	}
	return DecombineShipmentCommand{actor: actor, shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c DecombineShipmentCommand) Validate() error {
	return c.guard.Validate(ErrDecombineShipmentCommandIsNotConstructed)
}

func (c DecombineShipmentCommand) Actor() access.Actor     { return c.actor }
func (c DecombineShipmentCommand) ShipmentID() kernel.UUID { return c.shipmentID }

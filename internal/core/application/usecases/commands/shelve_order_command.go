package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrShelveOrderCommandIsNotConstructed = errors.New(
	"ShelveOrderCommand must be created via NewShelveOrderCommand constructor",
)

type ShelveOrderCommand struct {
	actor       access.Actor
	placementID kernel.UUID
	orderID     kernel.UUID
	shelfCode   string

	guard guard.ConstructorGuard
}

func NewShelveOrderCommand(
	actor access.Actor,
	placementID kernel.UUID,
	orderID kernel.UUID,
	shelfCode string,
) (ShelveOrderCommand, error) {
	if err := errors.Join(actor.Validate(), placementID.Validate(), orderID.Validate()); err != nil {
		return ShelveOrderCommand{}, err
	}
	return ShelveOrderCommand{
		actor:       actor,
		placementID: placementID,
		orderID:     orderID,
		shelfCode:   shelfCode,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ShelveOrderCommand) Validate() error {
	return c.guard.Validate(ErrShelveOrderCommandIsNotConstructed)
}

func (c ShelveOrderCommand) Actor() access.Actor      { return c.actor }
func (c ShelveOrderCommand) PlacementID() kernel.UUID { return c.placementID }
func (c ShelveOrderCommand) OrderID() kernel.UUID     { return c.orderID }
func (c ShelveOrderCommand) ShelfCode() string        { return c.shelfCode }

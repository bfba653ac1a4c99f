package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var ErrSaveFlightCommandIsNotConstructed = errors.New(
	"SaveFlightCommand must be created via NewSaveFlightCommand constructor",
)

type SaveFlightCommand struct {
	actor    access.Actor
	flightID kernel.UUID
	schedule flight.Schedule

	guard guard.ConstructorGuard
}

func NewSaveFlightCommand(actor access.Actor, flightID kernel.UUID, schedule flight.Schedule) (SaveFlightCommand, error) {
	if err := errors.Join(actor.Validate(), flightID.Validate()); err != nil {
		return SaveFlightCommand{}, err
	}
	return SaveFlightCommand{actor: actor, flightID: flightID, schedule: schedule, guard: guard.NewConstructorGuard()}, nil
}

func (c SaveFlightCommand) Validate() error {
	return c.guard.Validate(ErrSaveFlightCommandIsNotConstructed)
}

func (c SaveFlightCommand) Actor() access.Actor       { return c.actor }
func (c SaveFlightCommand) FlightID() kernel.UUID     { return c.flightID }
func (c SaveFlightCommand) Schedule() flight.Schedule { return c.schedule }

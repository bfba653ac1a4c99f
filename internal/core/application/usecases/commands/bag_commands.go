package commands

import (
	"errors"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/guard"
)

var (
	ErrSaveBagCommandIsNotConstructed = errors.New(
		"SaveBagCommand must be created via NewSaveBagCommand constructor",
	)
	ErrAddOrderToBagCommandIsNotConstructed = errors.New(
		"AddOrderToBagCommand must be created via NewAddOrderToBagCommand constructor",
	)
	ErrAssignBagToFlightCommandIsNotConstructed = errors.New(
		"AssignBagToFlightCommand must be created via NewAssignBagToFlightCommand constructor",
	)
)

// SaveBagCommand creates a bag or relabels it. The branch is fixed at
// creation and ignored on update.
type SaveBagCommand struct {
	actor          access.Actor
	bagID          kernel.UUID
	label          string
	branchID       kernel.UUID
	maxWeightGrams int

	guard guard.ConstructorGuard
}

func NewSaveBagCommand(
	actor access.Actor,
	bagID kernel.UUID,
	label string,
	branchID kernel.UUID,
	maxWeightGrams int,
) (SaveBagCommand, error) {
	if err := errors.Join(actor.Validate(), bagID.Validate()); err != nil {
		return SaveBagCommand{}, err
	}
	return SaveBagCommand{
		actor:          actor,
		bagID:          bagID,
		label:          label,
		branchID:       branchID,
		maxWeightGrams: maxWeightGrams,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c SaveBagCommand) Validate() error {
	return c.guard.Validate(ErrSaveBagCommandIsNotConstructed)
}

func (c SaveBagCommand) Actor() access.Actor   { return c.actor }
func (c SaveBagCommand) BagID() kernel.UUID    { return c.bagID }
func (c SaveBagCommand) Label() string         { return c.label }
func (c SaveBagCommand) BranchID() kernel.UUID { return c.branchID }
func (c SaveBagCommand) MaxWeightGrams() int   { return c.maxWeightGrams }

type AddOrderToBagCommand struct {
	actor   access.Actor
	bagID   kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAddOrderToBagCommand(actor access.Actor, bagID, orderID kernel.UUID) (AddOrderToBagCommand, error) {
	if err := errors.Join(actor.Validate(), bagID.Validate(), orderID.Validate()); err != nil {
		return AddOrderToBagCommand{}, err
	}
	return AddOrderToBagCommand{actor: actor, bagID: bagID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c AddOrderToBagCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderToBagCommandIsNotConstructed)
}

func (c AddOrderToBagCommand) Actor() access.Actor  { return c.actor }
func (c AddOrderToBagCommand) BagID() kernel.UUID   { return c.bagID }
func (c AddOrderToBagCommand) OrderID() kernel.UUID { return c.orderID }

type AssignBagToFlightCommand struct {
	actor    access.Actor
	bagID    kernel.UUID
	flightID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignBagToFlightCommand(actor access.Actor, bagID, flightID kernel.UUID) (AssignBagToFlightCommand, error) {
	if err := errors.Join(actor.Validate(), bagID.Validate(), flightID.Validate()); err != nil {
		return AssignBagToFlightCommand{}, err
	}
	return AssignBagToFlightCommand{actor: actor, bagID: bagID, flightID: flightID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignBagToFlightCommand) Validate() error {
	return c.guard.Validate(ErrAssignBagToFlightCommandIsNotConstructed)
}

func (c AssignBagToFlightCommand) Actor() access.Actor   { return c.actor }
func (c AssignBagToFlightCommand) BagID() kernel.UUID    { return c.bagID }
func (c AssignBagToFlightCommand) FlightID() kernel.UUID { return c.flightID }

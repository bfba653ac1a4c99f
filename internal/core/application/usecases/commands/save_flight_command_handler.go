package commands

import (
	"context"
	"fmt"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// SaveFlightCommandHandler creates or edits a flight.
type SaveFlightCommandHandler struct {
	uowFactory OperationsUoWFactory
	clock      ports.Clock
}

// NewSaveFlightCommandHandler wires the handler to its dependencies.
func NewSaveFlightCommandHandler(uowFactory OperationsUoWFactory, clock ports.Clock) SaveFlightCommandHandler {
	return SaveFlightCommandHandler{uowFactory: uowFactory, clock: clock}
}

// Create schedules a new flight dispatched from a branch in its origin country.
func (h SaveFlightCommandHandler) Create(ctx context.Context, cmd SaveFlightCommand) (*flight.Flight, error) {
	return h.save(ctx, cmd, true)
}

// Update reschedules an existing flight.
func (h SaveFlightCommandHandler) Update(ctx context.Context, cmd SaveFlightCommand) (*flight.Flight, error) {
	return h.save(ctx, cmd, false)
}

func (h SaveFlightCommandHandler) save(ctx context.Context, cmd SaveFlightCommand, create bool) (*flight.Flight, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageFlights); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	flightRepo := uow.FlightRepository()

	var (
		f   *flight.Flight
		err error
	)
	if create {
		f, err = flight.NewFlight(cmd.FlightID(), cmd.Schedule(), h.clock.Now())
	} else {
		f, err = flightRepo.Get(ctx, cmd.FlightID())
		if err == nil {
			err = f.Reschedule(cmd.Schedule())
		}
	}
	if err != nil {
		return nil, err
	}

	b, err := uow.BranchRepository().Get(ctx, f.BranchID())
	if err != nil {
		return nil, requireReference("branch_id", err)
	}
	if b.Country() != f.OriginCountry() {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"branch_id",
			fmt.Errorf("branch is in %s but the flight departs from %s", b.Country(), f.OriginCountry()),
		)
	}

	if create {
		err = flightRepo.Add(ctx, f)
	} else {
		err = flightRepo.Update(ctx, f)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return f, nil
}

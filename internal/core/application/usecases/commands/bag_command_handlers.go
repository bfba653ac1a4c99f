package commands

import (
	"context"
	"fmt"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

// SaveBagCommandHandler creates bags at a branch and relabels them.
type SaveBagCommandHandler struct {
	uowFactory OperationsUoWFactory
	clock      ports.Clock
}

// NewSaveBagCommandHandler wires the handler to its dependencies.
func NewSaveBagCommandHandler(uowFactory OperationsUoWFactory, clock ports.Clock) SaveBagCommandHandler {
	return SaveBagCommandHandler{uowFactory: uowFactory, clock: clock}
}

func (h SaveBagCommandHandler) Create(ctx context.Context, cmd SaveBagCommand) (*bag.Bag, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageBags); err != nil {
		return nil, err
	}

	b, err := bag.NewBag(cmd.BagID(), cmd.Label(), cmd.BranchID(), cmd.MaxWeightGrams(), h.clock.Now())
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

	if _, err = uow.BranchRepository().Get(ctx, b.BranchID()); err != nil {
		return nil, requireReference("branch_id", err)
	}

	if err = uow.BagRepository().Add(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

func (h SaveBagCommandHandler) Update(ctx context.Context, cmd SaveBagCommand) (*bag.Bag, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageBags); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bagRepo := uow.BagRepository()
	b, err := bagRepo.Get(ctx, cmd.BagID())
	if err != nil {
		return nil, err
	}

	if err = b.Relabel(cmd.Label(), cmd.MaxWeightGrams()); err != nil {
		return nil, err
	}

	if err = bagRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

// AddOrderToBagCommandHandler puts a received order into an open bag and moves it to bagged.
type AddOrderToBagCommandHandler struct {
	uowFactory OperationsUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
}

// NewAddOrderToBagCommandHandler wires the handler to its dependencies.
func NewAddOrderToBagCommandHandler(
	uowFactory OperationsUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
) AddOrderToBagCommandHandler {
	return AddOrderToBagCommandHandler{uowFactory: uowFactory, publisher: publisher, clock: clock}
}

// Handle packs a received order into a bag of a branch in the order's origin
// country. An order still marked received_at_branch moves to bagged.
func (h AddOrderToBagCommandHandler) Handle(ctx context.Context, cmd AddOrderToBagCommand) (*bag.Bag, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageBags); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bagRepo := uow.BagRepository()
	orderRepo := uow.OrderRepository()

	b, err := bagRepo.Get(ctx, cmd.BagID())
	if err != nil {
		return nil, err
	}
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if o.Status() != order.ReceivedAtBranch && o.Status() != order.Bagged {
		return nil, errs.NewConflictError("order", o.ID(), fmt.Sprintf("cannot be bagged in status %s", o.Status()))
	}
	br, err := uow.BranchRepository().Get(ctx, b.BranchID())
	if err != nil {
		return nil, err
	}
	if br.Country() != o.Origin().Country() {
		return nil, errs.NewConflictError("order", o.ID(),
			fmt.Sprintf("ships from %s but the bag is packed in %s", o.Origin().Country(), br.Country()))
	}

	if err = b.AddOrder(o.ID(), o.TotalWeightGrams()); err != nil {
		return nil, err
	}
	if err = bagRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	var changed *order.StatusChanged
	if o.Status() == order.ReceivedAtBranch {
		from, err := o.TransitionTo(order.Bagged, h.clock.Now())
		if err != nil {
			return nil, err
		}
		if err = orderRepo.Update(ctx, o); err != nil {
			return nil, err
		}
		changed = &order.StatusChanged{
			OrderID:   o.ID(),
			OwnerID:   o.OwnerID(),
			From:      from.String(),
			To:        o.Status().String(),
			ChangedBy: cmd.Actor().UserID,
			ChangedAt: o.StatusChangedAt(),
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if changed != nil {
		publish(ctx, h.publisher, *changed)
	}

	return b, nil
}

// AssignBagToFlightCommandHandler attaches a sealed bag to a flight.
type AssignBagToFlightCommandHandler struct {
	uowFactory OperationsUoWFactory
}

// NewAssignBagToFlightCommandHandler wires the handler to its dependencies.
func NewAssignBagToFlightCommandHandler(uowFactory OperationsUoWFactory) AssignBagToFlightCommandHandler {
	return AssignBagToFlightCommandHandler{uowFactory: uowFactory}
}

// Handle loads a bag on a flight departing from the bag's country.
func (h AssignBagToFlightCommandHandler) Handle(ctx context.Context, cmd AssignBagToFlightCommand) (*bag.Bag, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(cmd.Actor(), access.ManageBags); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	bagRepo := uow.BagRepository()
	b, err := bagRepo.Get(ctx, cmd.BagID())
	if err != nil {
		return nil, err
	}
	f, err := uow.FlightRepository().Get(ctx, cmd.FlightID())
	if err != nil {
		return nil, err
	}
	br, err := uow.BranchRepository().Get(ctx, b.BranchID())
	if err != nil {
		return nil, err
	}
	if br.Country() != f.OriginCountry() {
		return nil, errs.NewConflictError("bag", b.ID(),
			fmt.Sprintf("is packed in %s but flight %s departs from %s", br.Country(), f.Number(), f.OriginCountry()))
	}

	if err = b.AssignToFlight(f.ID()); err != nil {
		return nil, err
	}
	if err = bagRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return b, nil
}

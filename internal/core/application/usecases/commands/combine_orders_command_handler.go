package commands

import (
	"context"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// CombineOrdersCommandHandler links a user's orders into one combined shipment.
type CombineOrdersCommandHandler struct {
	uowFactory   ConsolidationUoWFactory
	publisher    ports.EventPublisher
	clock        ports.Clock
	consolidator services.Consolidator
}

// NewCombineOrdersCommandHandler wires the handler to its dependencies.
func NewCombineOrdersCommandHandler(
	uowFactory ConsolidationUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
) CombineOrdersCommandHandler {
	return CombineOrdersCommandHandler{
		uowFactory:   uowFactory,
		publisher:    publisher,
		clock:        clock,
		consolidator: services.NewConsolidator(),
	}
}

// Handle creates a combined shipment from the given orders, all or nothing.
//
// Member rows are locked for the whole transaction and every member write
// is a version compare-and-set, so two overlapping requests can never both
// succeed: the later one sees the link written by the earlier one and fails
// with IncompatibleOrdersError, or loses the version race with ConflictError.
func (h CombineOrdersCommandHandler) Handle(ctx context.Context, cmd CombineOrdersCommand) (shipment.View, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.View{}, err
	}
	if err := access.Require(cmd.Actor(), access.CombineOrders); err != nil {
		return shipment.View{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.View{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	found, err := orderRepo.GetForUpdate(ctx, cmd.OrderIDs())
	if err != nil {
		return shipment.View{}, err
	}

	s, err := h.consolidator.Combine(cmd.ShipmentID(), cmd.Actor().UserID, cmd.OrderIDs(), found, h.clock.Now())
	if err != nil {
		return shipment.View{}, err
	}

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return shipment.View{}, err
	}
	for _, o := range found {
		if err = orderRepo.Update(ctx, o); err != nil {
			return shipment.View{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.View{}, err
	}

	publish(ctx, h.publisher, shipment.OrdersCombined{
		ShipmentID: s.ID(),
		OrderIDs:   s.MemberIDs(),
		CombinedBy: s.CreatedBy(),
		CombinedAt: s.CreatedAt(),
	})

	return shipment.NewView(s, found), nil
}

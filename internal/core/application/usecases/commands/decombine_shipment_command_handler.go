package commands

import (
	"context"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/domain/services"
	"forwarding/internal/core/ports"
)

// DecombineShipmentCommandHandler dissolves a combined shipment and unlinks its orders.
type DecombineShipmentCommandHandler struct {
	uowFactory   ConsolidationUoWFactory
	publisher    ports.EventPublisher
	clock        ports.Clock
	consolidator services.Consolidator
}

// NewDecombineShipmentCommandHandler wires the handler to its dependencies.
func NewDecombineShipmentCommandHandler(
	uowFactory ConsolidationUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
) DecombineShipmentCommandHandler {
	return DecombineShipmentCommandHandler{
		uowFactory:   uowFactory,
		publisher:    publisher,
		clock:        clock,
		consolidator: services.NewConsolidator(),
	}
}

// Handle dissolves a combined shipment. Member statuses are untouched.
func (h DecombineShipmentCommandHandler) Handle(ctx context.Context, cmd DecombineShipmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := access.Require(cmd.Actor(), access.DecombineShipment); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	orderRepo := uow.OrderRepository()

	s, err := shipmentRepo.Get(ctx, cmd.ShipmentID())
	if err != nil {
		return err
	}

	members, err := orderRepo.GetForUpdate(ctx, s.MemberIDs())
	if err != nil {
		return err
	}

	if err = h.consolidator.Decombine(s, members); err != nil {
		return err
	}
	for _, o := range members {
		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}
	}
	if err = shipmentRepo.Delete(ctx, s.ID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	ids := make([]kernel.UUID, 0, len(members))
	for _, o := range members {
		ids = append(ids, o.ID())
	}
	publish(ctx, h.publisher, shipment.Decombined{
		ShipmentID:   s.ID(),
		OrderIDs:     ids,
		DecombinedBy: cmd.Actor().UserID,
		DecombinedAt: h.clock.Now().UTC(),
	})

	return nil
}

package queries

import (
	"context"
	"errors"
	"time"

	"forwarding/internal/core/domain/model/access"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/guard"
)

var ErrListCombinedShipmentsQueryIsNotConstructed = errors.New(
	"ListCombinedShipmentsQuery must be created via NewListCombinedShipmentsQuery constructor",
)

// ShipmentCriteria narrows the listing. Nil fields match everything.
type ShipmentCriteria struct {
	Status              *order.Status
	DestinationBranchID *kernel.UUID
	Created             *kernel.DateRange
}

type ListCombinedShipmentsQuery struct {
	actor    access.Actor
	criteria ShipmentCriteria

	guard guard.ConstructorGuard
}

func NewListCombinedShipmentsQuery(actor access.Actor, criteria ShipmentCriteria) (ListCombinedShipmentsQuery, error) {
	if err := actor.Validate(); err != nil {
		return ListCombinedShipmentsQuery{}, err
	}
	if criteria.Status != nil {
		if err := criteria.Status.Validate(); err != nil {
			return ListCombinedShipmentsQuery{}, err
		}
	}
	return ListCombinedShipmentsQuery{actor: actor, criteria: criteria, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCombinedShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrListCombinedShipmentsQueryIsNotConstructed)
}

// ListCombinedShipmentsQueryHandler lists combined shipments matching a filter.
type ListCombinedShipmentsQueryHandler struct {
	readModel ReadModelFactory
	loc       *time.Location
}

// NewListCombinedShipmentsQueryHandler wires the handler to its dependencies.
func NewListCombinedShipmentsQueryHandler(readModel ReadModelFactory, loc *time.Location) ListCombinedShipmentsQueryHandler {
	return ListCombinedShipmentsQueryHandler{readModel: readModel, loc: loc}
}

// Handle returns shipments newest first with members resolved. The status
// filter applies to the derived status, which is computed on every call.
func (h ListCombinedShipmentsQueryHandler) Handle(
	ctx context.Context,
	query ListCombinedShipmentsQuery,
) ([]shipment.View, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := access.Require(query.actor, access.ListCombinedShipments); err != nil {
		return nil, err
	}

	filter := ports.ShipmentFilter{DestinationBranchID: query.criteria.DestinationBranchID}
	if days := query.criteria.Created; days != nil {
		start, end := days.Bounds(h.loc)
		filter.CreatedFrom = &start
		filter.CreatedTo = &end
	}

	rm := h.readModel.Create()
	shipments, err := rm.ShipmentRepository().List(ctx, filter)
	if err != nil {
		return nil, err
	}

	views := make([]shipment.View, 0, len(shipments))
	for _, s := range shipments {
		members, err := rm.OrderRepository().ListByShipment(ctx, s.ID())
		if err != nil {
			return nil, err
		}
		view := shipment.NewView(s, members)
		if query.criteria.Status != nil && view.Status != *query.criteria.Status {
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

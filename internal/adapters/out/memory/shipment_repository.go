package memory

import (
	"context"
	"sort"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

var _ ports.ShipmentRepository = &ShipmentRepository{}

// ShipmentRepository shares stored shipments: they have no mutators.
type ShipmentRepository struct {
	uow *UnitOfWork
}

func (r *ShipmentRepository) Add(ctx context.Context, aggregate *shipment.CombinedShipment) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, exists := st.shipments[aggregate.ID()]; exists {
		return errs.NewConflictError("combined shipment", aggregate.ID(), "already exists")
	}
	st.shipments[aggregate.ID()] = aggregate
	return nil
}

func (r *ShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.CombinedShipment, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	s, ok := st.shipments[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("combined shipment", id.String())
	}
	return s, nil
}

func (r *ShipmentRepository) List(
	ctx context.Context,
	filter ports.ShipmentFilter,
) ([]*shipment.CombinedShipment, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*shipment.CombinedShipment, 0, len(st.shipments))
	for _, s := range st.shipments {
		if filter.CreatedFrom != nil && s.CreatedAt().Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && !s.CreatedAt().Before(*filter.CreatedTo) {
			continue
		}
		if filter.DestinationBranchID != nil && !headsTo(st, s, *filter.DestinationBranchID) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[j].ID().Less(out[i].ID())
	})
	return out, nil
}

func (r *ShipmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, ok := st.shipments[id]; !ok {
		return errs.NewObjectNotFoundError("combined shipment", id.String())
	}
	delete(st.shipments, id)
	return nil
}

// headsTo checks the first member; members of a shipment share the branch.
func headsTo(st *state, s *shipment.CombinedShipment, branchID kernel.UUID) bool {
	for _, id := range s.MemberIDs() {
		if o, ok := st.orders[id]; ok {
			return o.DestinationBranchID() == branchID
		}
	}
	return false
}

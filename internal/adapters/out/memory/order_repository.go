package memory

import (
	"context"
	"sort"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

var _ ports.OrderRepository = &OrderRepository{}

type OrderRepository struct {
	uow *UnitOfWork
}

func (r *OrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, exists := st.orders[aggregate.ID()]; exists {
		return errs.NewConflictError("order", aggregate.ID(), "already exists")
	}
	st.orders[aggregate.ID()] = cloneOrder(aggregate, aggregate.Version())
	return nil
}

func (r *OrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	stored, ok := st.orders[aggregate.ID()]
	if !ok {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}
	if stored.Version() != aggregate.Version() {
		return errs.NewConflictError("order", aggregate.ID(), "was modified concurrently")
	}
	if link := aggregate.CombinedShipmentID(); link != nil {
		if current := stored.CombinedShipmentID(); current != nil && !current.IsEqual(*link) {
			return errs.NewConflictError("order", aggregate.ID(), "was modified concurrently")
		}
	}
	st.orders[aggregate.ID()] = cloneOrder(aggregate, aggregate.Version()+1)
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	stored, ok := st.orders[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id.String())
	}
	return cloneOrder(stored, stored.Version()), nil
}

// GetForUpdate needs no locking here: the transaction already owns the store.
func (r *OrderRepository) GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	sorted := append([]kernel.UUID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	out := make([]*order.Order, 0, len(sorted))
	seen := make(map[kernel.UUID]struct{}, len(sorted))
	for _, id := range sorted {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if stored, ok := st.orders[id]; ok {
			out = append(out, cloneOrder(stored, stored.Version()))
		}
	}
	return out, nil
}

func (r *OrderRepository) ListByOwner(
	ctx context.Context,
	ownerID kernel.UUID,
	page *ports.Page,
) ([]*order.Order, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	out := r.filter(st, func(o *order.Order) bool { return o.OwnerID() == ownerID })
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].CreatedAt().After(out[j].CreatedAt())
		}
		return out[j].ID().Less(out[i].ID())
	})
	return paginate(out, page), nil
}

func (r *OrderRepository) ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*order.Order, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	out := r.filter(st, func(o *order.Order) bool {
		id := o.CombinedShipmentID()
		return id != nil && *id == shipmentID
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID().Less(out[j].ID()) })
	return out, nil
}

func (r *OrderRepository) CountLiveByBranch(ctx context.Context, branchID kernel.UUID) (int64, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, o := range st.orders {
		if o.DestinationBranchID() == branchID && !o.Status().IsTerminal() {
			n++
		}
	}
	return n, nil
}

func (r *OrderRepository) filter(st *state, keep func(*order.Order) bool) []*order.Order {
	out := make([]*order.Order, 0)
	for _, o := range st.orders {
		if keep(o) {
			out = append(out, cloneOrder(o, o.Version()))
		}
	}
	return out
}

func paginate[T any](items []T, page *ports.Page) []T {
	if page == nil {
		return items
	}
	if page.Offset >= len(items) {
		return items[:0]
	}
	items = items[page.Offset:]
	if page.Limit > 0 && page.Limit < len(items) {
		items = items[:page.Limit]
	}
	return items
}

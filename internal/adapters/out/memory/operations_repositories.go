package memory

import (
	"context"
	"fmt"

	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shelf"
	"forwarding/internal/core/domain/model/userblock"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

var (
	_ ports.FlightRepository    = &FlightRepository{}
	_ ports.BagRepository       = &BagRepository{}
	_ ports.ShelfRepository     = &ShelfRepository{}
	_ ports.UserBlockRepository = &UserBlockRepository{}
)

type FlightRepository struct {
	uow *UnitOfWork
}

func (r *FlightRepository) Add(ctx context.Context, aggregate *flight.Flight) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, exists := st.flights[aggregate.ID()]; exists {
		return errs.NewConflictError("flight", aggregate.ID(), "already exists")
	}
	st.flights[aggregate.ID()] = cloneFlight(aggregate)
	return nil
}

func (r *FlightRepository) Update(ctx context.Context, aggregate *flight.Flight) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, ok := st.flights[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("flight", aggregate.ID().String())
	}
	st.flights[aggregate.ID()] = cloneFlight(aggregate)
	return nil
}

func (r *FlightRepository) Get(ctx context.Context, id kernel.UUID) (*flight.Flight, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	f, ok := st.flights[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("flight", id.String())
	}
	return cloneFlight(f), nil
}

type BagRepository struct {
	uow *UnitOfWork
}

func (r *BagRepository) Add(ctx context.Context, aggregate *bag.Bag) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, exists := st.bags[aggregate.ID()]; exists {
		return errs.NewConflictError("bag", aggregate.ID(), "already exists")
	}
	if err = checkPackedElsewhere(st, aggregate); err != nil {
		return err
	}
	st.bags[aggregate.ID()] = cloneBag(aggregate)
	return nil
}

func (r *BagRepository) Update(ctx context.Context, aggregate *bag.Bag) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	if _, ok := st.bags[aggregate.ID()]; !ok {
		return errs.NewObjectNotFoundError("bag", aggregate.ID().String())
	}
	if err = checkPackedElsewhere(st, aggregate); err != nil {
		return err
	}
	st.bags[aggregate.ID()] = cloneBag(aggregate)
	return nil
}

func (r *BagRepository) Get(ctx context.Context, id kernel.UUID) (*bag.Bag, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return nil, err
	}
	b, ok := st.bags[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("bag", id.String())
	}
	return cloneBag(b), nil
}

func (r *BagRepository) CountByBranch(ctx context.Context, branchID kernel.UUID) (int64, error) {
	st, err := r.uow.read(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, b := range st.bags {
		if b.BranchID() == branchID {
			n++
		}
	}
	return n, nil
}

// checkPackedElsewhere enforces that an order sits in at most one bag.
func checkPackedElsewhere(st *state, candidate *bag.Bag) error {
	for _, other := range st.bags {
		if other.ID() == candidate.ID() {
			continue
		}
		for _, id := range candidate.OrderIDs() {
			if other.Contains(id) {
				return errs.NewConflictError("order", id, fmt.Sprintf("is already packed in bag %s", other.Label()))
			}
		}
	}
	return nil
}

// ShelfRepository and UserBlockRepository are append-only; their records
// are immutable and shared.
type ShelfRepository struct {
	uow *UnitOfWork
}

func (r *ShelfRepository) Add(ctx context.Context, placement *shelf.Placement) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	st.placements = append(st.placements, placement)
	return nil
}

type UserBlockRepository struct {
	uow *UnitOfWork
}

func (r *UserBlockRepository) Add(ctx context.Context, block *userblock.Block) error {
	st, err := r.uow.write(ctx)
	if err != nil {
		return err
	}
	st.blocks = append(st.blocks, block)
	return nil
}

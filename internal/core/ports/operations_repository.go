package ports

import (
	"context"

	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/flight"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shelf"
	"forwarding/internal/core/domain/model/userblock"
)

type FlightRepository interface {
	Add(ctx context.Context, aggregate *flight.Flight) error
	Update(ctx context.Context, aggregate *flight.Flight) error
	Get(ctx context.Context, id kernel.UUID) (*flight.Flight, error)
}

type BagRepository interface {
	Add(ctx context.Context, aggregate *bag.Bag) error

	// Update rewrites the bag and its contents. Packing an order that is
	// already in another bag fails with ConflictError.
	Update(ctx context.Context, aggregate *bag.Bag) error

	Get(ctx context.Context, id kernel.UUID) (*bag.Bag, error)

	CountByBranch(ctx context.Context, branchID kernel.UUID) (int64, error)
}

type ShelfRepository interface {
	Add(ctx context.Context, placement *shelf.Placement) error
}

type UserBlockRepository interface {
	Add(ctx context.Context, block *userblock.Block) error
}

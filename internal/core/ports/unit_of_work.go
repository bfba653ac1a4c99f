package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one transaction. Repositories obtained after Begin see and
// write through that transaction; nothing is visible to others before Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository

	ShipmentRepository() ShipmentRepository

	BranchRepository() BranchRepository

	FlightRepository() FlightRepository

	BagRepository() BagRepository

	ShelfRepository() ShelfRepository

	UserBlockRepository() UserBlockRepository
}

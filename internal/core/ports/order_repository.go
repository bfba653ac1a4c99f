package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
)

// Page restricts a listing. A nil *Page means the whole result.
type Page struct {
	Limit  int
	Offset int
}

type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the aggregate only if the stored version still equals
	// aggregate.Version(); otherwise it returns a ConflictError. On success
	// the stored version is incremented.
	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate loads and locks the given orders in ascending id order
	// for the rest of the transaction. Unknown ids are silently skipped.
	GetForUpdate(ctx context.Context, ids []kernel.UUID) ([]*order.Order, error)

	// ListByOwner returns the owner's orders, newest first.
	ListByOwner(ctx context.Context, ownerID kernel.UUID, page *Page) ([]*order.Order, error)

	ListByShipment(ctx context.Context, shipmentID kernel.UUID) ([]*order.Order, error)

	// CountLiveByBranch counts non-terminal orders headed to the branch.
	CountLiveByBranch(ctx context.Context, branchID kernel.UUID) (int64, error)
}

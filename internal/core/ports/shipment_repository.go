package ports

import (
	"context"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shipment"
)

// ShipmentFilter narrows a combined-shipment listing. Zero fields match all.
type ShipmentFilter struct {
	DestinationBranchID *kernel.UUID
	CreatedFrom         *time.Time
	CreatedTo           *time.Time
}

type ShipmentRepository interface {
	// Add stores the shipment row. Member links are written through the
	// order repository in the same transaction.
	Add(ctx context.Context, aggregate *shipment.CombinedShipment) error

	Get(ctx context.Context, id kernel.UUID) (*shipment.CombinedShipment, error)

	// List returns shipments newest first.
	List(ctx context.Context, filter ShipmentFilter) ([]*shipment.CombinedShipment, error)

	Delete(ctx context.Context, id kernel.UUID) error
}

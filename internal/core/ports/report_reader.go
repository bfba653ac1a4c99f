package ports

import (
	"context"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/core/domain/model/report"
)

// ReportReader answers the read-only questions behind every report kind.
// Implementations must never write.
type ReportReader interface {
	CountOrdersCreated(ctx context.Context, w report.Window) (int64, error)
	CountShipmentsCreated(ctx context.Context, w report.Window) (int64, error)
	CountOrdersByStatus(ctx context.Context, w report.Window) (map[order.Status]int64, error)

	// FlightLegs returns flights whose departure day is inside days.
	FlightLegs(ctx context.Context, days kernel.DateRange) ([]report.FlightLeg, error)
	BagsCreated(ctx context.Context, w report.Window) ([]report.BagRow, error)
	HandedOverOrders(ctx context.Context, w report.Window, f order.Fulfillment) ([]report.HandedOverOrder, error)
	ShelfPlacements(ctx context.Context, w report.Window) ([]report.ShelfRow, error)
	UserBlocks(ctx context.Context, w report.Window) ([]report.BlockRow, error)
}

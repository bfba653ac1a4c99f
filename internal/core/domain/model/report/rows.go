package report

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
)

// The row types below are read-only projections returned by a report
// reader. They never reference live aggregates.

// BagLoad is a bag loaded on a flight.
type BagLoad struct {
	BagID       kernel.UUID
	Label       string
	OrderCount  int
	WeightGrams int
}

// FlightLeg is a flight departing inside the window with its bags.
type FlightLeg struct {
	FlightID           kernel.UUID
	Number             string
	DepartureDate      kernel.Day
	OriginCountry      kernel.Country
	DestinationCountry kernel.Country
	AirWaybills        []string
	Bags               []BagLoad
}

// BagRow is a bag created inside the window.
type BagRow struct {
	BagID       kernel.UUID
	Label       string
	BranchID    kernel.UUID
	BranchTitle string
	FlightID    *kernel.UUID
	OrderCount  int
	WeightGrams int
	CreatedAt   time.Time
}

// HandedOverOrder is an order that reached the customer side inside the window.
type HandedOverOrder struct {
	OrderID     kernel.UUID `json:"order_id"`
	OwnerID     kernel.UUID `json:"owner_id"`
	BranchID    kernel.UUID `json:"branch_id"`
	BranchTitle string      `json:"branch_title"`
	Status      string      `json:"status"`
	ReachedAt   time.Time   `json:"reached_at"`
}

// ShelfRow is one shelf placement inside the window.
type ShelfRow struct {
	PlacementID kernel.UUID `json:"placement_id"`
	OrderID     kernel.UUID `json:"order_id"`
	BranchID    kernel.UUID `json:"branch_id"`
	BranchTitle string      `json:"branch_title"`
	ShelfCode   string      `json:"shelf_code"`
	PlacedAt    time.Time   `json:"placed_at"`
	PlacedBy    kernel.UUID `json:"placed_by"`
}

// BlockRow is one user block inside the window.
type BlockRow struct {
	BlockID   kernel.UUID `json:"block_id"`
	UserID    kernel.UUID `json:"user_id"`
	BlockedBy kernel.UUID `json:"blocked_by"`
	Reason    string      `json:"reason"`
	BlockedAt time.Time   `json:"blocked_at"`
}

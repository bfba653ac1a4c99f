package shipment

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
)

// OrdersCombined is raised after a combined shipment was created.
type OrdersCombined struct {
	ShipmentID kernel.UUID   `json:"shipment_id"`
	OrderIDs   []kernel.UUID `json:"order_ids"`
	CombinedBy kernel.UUID   `json:"combined_by"`
	CombinedAt time.Time     `json:"combined_at"`
}

func (e OrdersCombined) EventName() string     { return "shipment.orders_combined" }
func (e OrdersCombined) AggregateID() string   { return e.ShipmentID.String() }
func (e OrdersCombined) OccurredAt() time.Time { return e.CombinedAt }

// Decombined is raised after a combined shipment was dissolved.
type Decombined struct {
	ShipmentID   kernel.UUID   `json:"shipment_id"`
	OrderIDs     []kernel.UUID `json:"order_ids"`
	DecombinedBy kernel.UUID   `json:"decombined_by"`
	DecombinedAt time.Time     `json:"decombined_at"`
}

func (e Decombined) EventName() string     { return "shipment.decombined" }
func (e Decombined) AggregateID() string   { return e.ShipmentID.String() }
func (e Decombined) OccurredAt() time.Time { return e.DecombinedAt }

package order

import (
	"time"

	"forwarding/internal/core/domain/model/kernel"
)

// StatusChanged is raised after an order moved along the stage graph.
type StatusChanged struct {
	OrderID   kernel.UUID `json:"order_id"`
	OwnerID   kernel.UUID `json:"owner_id"`
	From      string      `json:"from"`
	To        string      `json:"to"`
	ChangedBy kernel.UUID `json:"changed_by"`
	ChangedAt time.Time   `json:"changed_at"`
}

func (e StatusChanged) EventName() string     { return "order.status_changed" }
func (e StatusChanged) AggregateID() string   { return e.OrderID.String() }
func (e StatusChanged) OccurredAt() time.Time { return e.ChangedAt }

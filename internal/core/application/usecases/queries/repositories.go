// Package queries contains read-only operations. Queries never begin a
// transaction: repositories obtained from an unstarted unit of work read
// committed state.
package queries

import "forwarding/internal/core/ports"

type (
	// ReadModel is the read side of a unit of work.
	ReadModel interface {
		OrderRepository() ports.OrderRepository
		ShipmentRepository() ports.ShipmentRepository
		BranchRepository() ports.BranchRepository
	}

	ReadModelFactory interface {
		Create() ReadModel
	}
)

// Package commands contains business operations that modify system state.
// Every command is a validated value built by its constructor; every handler
// runs it inside one unit of work and publishes domain events only after the
// commit succeeded.
package commands

import (
	"context"

	"forwarding/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	BranchRepoFactory interface {
		BranchRepository() ports.BranchRepository
	}

	FlightRepoFactory interface {
		FlightRepository() ports.FlightRepository
	}

	BagRepoFactory interface {
		BagRepository() ports.BagRepository
	}

	ShelfRepoFactory interface {
		ShelfRepository() ports.ShelfRepository
	}

	UserBlockRepoFactory interface {
		UserBlockRepository() ports.UserBlockRepository
	}

	// OrderUoW serves order placement, edits and status changes. The branch
	// repository is used to check the destination branch.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		BranchRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ConsolidationUoW serves combining and decombining orders.
	ConsolidationUoW interface {
		TxManager
		OrderRepoFactory
		ShipmentRepoFactory
	}

	ConsolidationUoWFactory interface {
		Create() ConsolidationUoW
	}

	// BranchUoW serves the branch directory. Orders and bags are read for
	// the delete policy.
	BranchUoW interface {
		TxManager
		BranchRepoFactory
		OrderRepoFactory
		BagRepoFactory
	}

	BranchUoWFactory interface {
		Create() BranchUoW
	}

	// OperationsUoW serves flights, bags and shelving.
	OperationsUoW interface {
		TxManager
		FlightRepoFactory
		BagRepoFactory
		OrderRepoFactory
		BranchRepoFactory
		ShelfRepoFactory
	}

	OperationsUoWFactory interface {
		Create() OperationsUoW
	}

	UserBlockUoW interface {
		TxManager
		UserBlockRepoFactory
	}

	UserBlockUoWFactory interface {
		Create() UserBlockUoW
	}
)

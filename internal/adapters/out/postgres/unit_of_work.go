// Package postgres provides the GORM-based Unit of Work. One instance wraps
// one database transaction; repositories obtained from it after Begin read
// and write through that transaction, and fall back to the plain connection
// otherwise (queries and report reads use that path).
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit is a harmless no-op that returns
// gorm.ErrInvalidTransaction, which handlers ignore.
package postgres

import (
	"context"

	"forwarding/internal/adapters/out/postgres/bagrepo"
	"forwarding/internal/adapters/out/postgres/branchrepo"
	"forwarding/internal/adapters/out/postgres/flightrepo"
	"forwarding/internal/adapters/out/postgres/orderrepo"
	"forwarding/internal/adapters/out/postgres/pgerrs"
	"forwarding/internal/adapters/out/postgres/shelfrepo"
	"forwarding/internal/adapters/out/postgres/shipmentrepo"
	"forwarding/internal/adapters/out/postgres/userblockrepo"
	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"

	"gorm.io/gorm"
)

var _ ports.UnitOfWork = &GormUnitOfWork{}

// GormUnitOfWorkFactory hands every business operation a fresh unit of work.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one transaction.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin opens the transaction. Calling it twice keeps the first one.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errs.NewStoreUnavailableError(tx.Error)
	}

	uow.tx = tx
	return nil
}

// Commit makes the writes visible. A failed commit leaves nothing behind,
// so it is reported as a conflict or an unavailable store.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return pgerrs.Map("transaction", "commit", err)
	}
	return nil
}

func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn())
}

func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn())
}

func (uow *GormUnitOfWork) BranchRepository() ports.BranchRepository {
	return branchrepo.NewGormBranchRepository(uow.conn())
}

func (uow *GormUnitOfWork) FlightRepository() ports.FlightRepository {
	return flightrepo.NewGormFlightRepository(uow.conn())
}

func (uow *GormUnitOfWork) BagRepository() ports.BagRepository {
	return bagrepo.NewGormBagRepository(uow.conn())
}

func (uow *GormUnitOfWork) ShelfRepository() ports.ShelfRepository {
	return shelfrepo.NewGormShelfRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserBlockRepository() ports.UserBlockRepository {
	return userblockrepo.NewGormUserBlockRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

package memory

import (
	"context"
	"errors"

	"forwarding/internal/core/ports"
	"forwarding/internal/pkg/errs"
)

var _ ports.UnitOfWork = &UnitOfWork{}

type UnitOfWork struct {
	store  *Store
	staged *state
}

// Begin waits for the running transaction to finish. A canceled context
// while waiting is reported as StoreUnavailableError.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.staged != nil {
		return errors.New("memory: transaction already started")
	}
	select {
	case u.store.writer <- struct{}{}:
	case <-ctx.Done():
		return errs.NewStoreUnavailableError(ctx.Err())
	}
	u.staged = u.store.snapshot().fork()
	return nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}
	if err := ctx.Err(); err != nil {
		u.release()
		return errs.NewStoreUnavailableError(err)
	}
	u.store.publish(u.staged)
	u.release()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.staged == nil {
		return ErrNoTransaction
	}
	u.release()
	return nil
}

func (u *UnitOfWork) release() {
	u.staged = nil
	<-u.store.writer
}

// read returns the transaction's state or, outside a transaction, the
// committed one.
func (u *UnitOfWork) read(ctx context.Context) (*state, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStoreUnavailableError(err)
	}
	if u.staged != nil {
		return u.staged, nil
	}
	return u.store.snapshot(), nil
}

func (u *UnitOfWork) write(ctx context.Context) (*state, error) {
	if err := ctx.Err(); err != nil {
		return nil, errs.NewStoreUnavailableError(err)
	}
	if u.staged == nil {
		return nil, ErrNoTransaction
	}
	return u.staged, nil
}

func (u *UnitOfWork) OrderRepository() ports.OrderRepository { return &OrderRepository{uow: u} }
func (u *UnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return &ShipmentRepository{uow: u}
}
func (u *UnitOfWork) BranchRepository() ports.BranchRepository { return &BranchRepository{uow: u} }
func (u *UnitOfWork) FlightRepository() ports.FlightRepository { return &FlightRepository{uow: u} }
func (u *UnitOfWork) BagRepository() ports.BagRepository       { return &BagRepository{uow: u} }
func (u *UnitOfWork) ShelfRepository() ports.ShelfRepository   { return &ShelfRepository{uow: u} }

func (u *UnitOfWork) UserBlockRepository() ports.UserBlockRepository {
	return &UserBlockRepository{uow: u}
}

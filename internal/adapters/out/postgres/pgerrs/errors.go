// Package pgerrs translates driver and GORM failures into the error kinds
// the core understands.
package pgerrs

import (
	"context"
	"errors"
	"net"

	"forwarding/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// SQLSTATE codes handled explicitly.
const (
	UniqueViolation      = "23505"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
	LockNotAvailable     = "55P03"
)

// Map classifies err for an operation on entity id.
//
//   - unique violations and lost concurrency races become ConflictError
//   - everything else coming from the store (timeouts, dropped connections,
//     unexpected driver failures) becomes StoreUnavailableError
//
// Errors the core already understands pass through unchanged.
func Map(entity string, id any, err error) error {
	if err == nil {
		return nil
	}
	if isCoreError(err) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case UniqueViolation:
			return errs.NewConflictError(entity, id, "already exists")
		case SerializationFailure, DeadlockDetected, LockNotAvailable:
			return errs.NewConflictError(entity, id, "was modified concurrently")
		}
	}

	return errs.NewStoreUnavailableError(err)
}

// IsUnavailable reports whether err means the store could not be reached in
// time, as opposed to a rejected statement.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// IsNotFound reports whether a single-row lookup found nothing.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isCoreError(err error) bool {
	for _, sentinel := range []error{
		errs.ErrObjectNotFound,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrValueIsRequired,
		errs.ErrForbidden,
		errs.ErrConflict,
		errs.ErrInvalidTransition,
		errs.ErrIncompatibleOrders,
		errs.ErrStoreUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

package bag_test

import (
	"testing"
	"time"

	"forwarding/internal/core/domain/model/bag"
	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.June, 1, 7, 0, 0, 0, time.UTC)

func newBag(t *testing.T, capacity int) *bag.Bag {
	t.Helper()
	b, err := bag.NewBag(kernel.NewUUID(), "EWR-001", kernel.NewUUID(), capacity, now)
	require.NoError(t, err)
	return b
}

func TestNewBag(t *testing.T) {
	t.Run("should create empty bag", func(t *testing.T) {
		b := newBag(t, 20000)

		require.NoError(t, b.Validate())
		assert.Equal(t, "EWR-001", b.Label())
		assert.Equal(t, 20000, b.MaxWeightGrams())
		assert.Equal(t, 0, b.LoadGrams())
		assert.Nil(t, b.FlightID())
		assert.Empty(t, b.Contents())
	})

	t.Run("should reject non-positive capacity and empty label", func(t *testing.T) {
		_, err := bag.NewBag(kernel.NewUUID(), " ", kernel.NewUUID(), 0, now)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
	})

	t.Run("restore rejects contents above capacity", func(t *testing.T) {
		contents := []bag.Content{{OrderID: kernel.NewUUID(), WeightGrams: 600}}

		_, err := bag.RestoreBag(kernel.NewUUID(), "L", kernel.NewUUID(), 500, nil, contents, now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestBag_AddOrder(t *testing.T) {
	t.Run("should pack until capacity", func(t *testing.T) {
		b := newBag(t, 1000)
		first, second := kernel.NewUUID(), kernel.NewUUID()

		require.NoError(t, b.AddOrder(first, 600))
		require.NoError(t, b.AddOrder(second, 400))

		assert.Equal(t, 0, b.RemainingGrams())
		assert.Equal(t, []kernel.UUID{first, second}, b.OrderIDs())
	})

	t.Run("should reject overweight parcel", func(t *testing.T) {
		b := newBag(t, 1000)
		require.NoError(t, b.AddOrder(kernel.NewUUID(), 900))

		err := b.AddOrder(kernel.NewUUID(), 101)

		require.ErrorIs(t, err, errs.ErrConflict)
		assert.Contains(t, err.Error(), "exceeds remaining capacity of 100 g")
		assert.Len(t, b.Contents(), 1)
	})

	t.Run("should reject duplicate order", func(t *testing.T) {
		b := newBag(t, 1000)
		id := kernel.NewUUID()
		require.NoError(t, b.AddOrder(id, 1))

		require.ErrorIs(t, b.AddOrder(id, 1), errs.ErrConflict)
	})

	t.Run("sealed after flight assignment", func(t *testing.T) {
		b := newBag(t, 1000)
		id := kernel.NewUUID()
		require.NoError(t, b.AddOrder(id, 1))
		require.NoError(t, b.AssignToFlight(kernel.NewUUID()))

		require.ErrorIs(t, b.AddOrder(kernel.NewUUID(), 1), errs.ErrConflict)
		assert.True(t, b.Contains(id))
	})

	t.Run("negative weight", func(t *testing.T) {
		b := newBag(t, 1000)

		_, err := b.CanAdd(-1)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestBag_AssignToFlight(t *testing.T) {
	b := newBag(t, 1000)

	require.ErrorIs(t, b.AssignToFlight(kernel.NewUUID()), errs.ErrConflict)

	require.NoError(t, b.AddOrder(kernel.NewUUID(), 10))
	flightID := kernel.NewUUID()
	require.NoError(t, b.AssignToFlight(flightID))
	require.NotNil(t, b.FlightID())
	assert.True(t, b.FlightID().IsEqual(flightID))
}

func TestBag_Relabel(t *testing.T) {
	b := newBag(t, 1000)
	require.NoError(t, b.AddOrder(kernel.NewUUID(), 700))

	err := b.Relabel("EWR-002", 600)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "EWR-001", b.Label())

	require.NoError(t, b.Relabel("EWR-002", 700))
	assert.Equal(t, "EWR-002", b.Label())
	assert.Equal(t, 700, b.MaxWeightGrams())
}

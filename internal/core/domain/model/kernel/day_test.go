package kernel_test

import (
	"testing"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDay(t *testing.T) {
	t.Run("should parse calendar day", func(t *testing.T) {
		d, err := kernel.ParseDay("2024-02-29")

		require.NoError(t, err)
		assert.Equal(t, 2024, d.Year())
		assert.Equal(t, time.February, d.Month())
		assert.Equal(t, 29, d.DayOfMonth())
		assert.Equal(t, "2024-02-29", d.String())
	})

	t.Run("should reject malformed input", func(t *testing.T) {
		for _, s := range []string{"", "2024-2-1", "2023-02-29", "29.02.2024"} {
			_, err := kernel.ParseDay(s)

			require.Error(t, err, s)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})
}

func TestNewDay_Normalizes(t *testing.T) {
	assert.Equal(t, "2024-02-29", kernel.NewDay(2024, time.March, 0).String())
	assert.Equal(t, "2023-02-28", kernel.NewDay(2023, time.March, 0).String())
	assert.Equal(t, "2025-01-01", kernel.NewDay(2024, time.December, 32).String())
}

func TestDayOf_UsesLocation(t *testing.T) {
	tbilisi := time.FixedZone("GET", 4*60*60)
	instant := time.Date(2024, time.January, 31, 22, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-31", kernel.DayOf(instant, time.UTC).String())
	assert.Equal(t, "2024-02-01", kernel.DayOf(instant, tbilisi).String())
}

func TestNewDateRange(t *testing.T) {
	from := kernel.NewDay(2024, time.March, 10)
	to := kernel.NewDay(2024, time.March, 5)

	t.Run("should reject from after to", func(t *testing.T) {
		_, err := kernel.NewDateRange(from, to)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "from 2024-03-10 is after to 2024-03-05")
	})

	t.Run("should accept single day range", func(t *testing.T) {
		r, err := kernel.NewDateRange(from, from)

		require.NoError(t, err)
		assert.True(t, r.ContainsDay(from))
	})

	t.Run("should require both ends", func(t *testing.T) {
		_, err := kernel.NewDateRange(kernel.Day{}, to)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestMonthOf(t *testing.T) {
	t.Run("february of a leap year ends on the 29th", func(t *testing.T) {
		now := time.Date(2024, time.February, 15, 12, 0, 0, 0, time.UTC)

		r := kernel.MonthOf(now, time.UTC)

		assert.Equal(t, "2024-02-01", r.From().String())
		assert.Equal(t, "2024-02-29", r.To().String())
	})

	t.Run("december rolls into next year for its bound", func(t *testing.T) {
		now := time.Date(2023, time.December, 3, 0, 0, 0, 0, time.UTC)

		r := kernel.MonthOf(now, time.UTC)

		assert.Equal(t, "2023-12-01..2023-12-31", r.String())
	})
}

func TestDateRange_Bounds(t *testing.T) {
	loc := time.FixedZone("EST", -5*60*60)
	r, err := kernel.NewDateRange(kernel.NewDay(2024, time.February, 1), kernel.NewDay(2024, time.February, 29))
	require.NoError(t, err)

	start, end := r.Bounds(loc)

	assert.Equal(t, time.Date(2024, time.February, 1, 5, 0, 0, 0, time.UTC), start.UTC())
	assert.Equal(t, time.Date(2024, time.March, 1, 5, 0, 0, 0, time.UTC), end.UTC())
	assert.True(t, r.Contains(time.Date(2024, time.February, 29, 23, 59, 0, 0, loc), loc))
	assert.False(t, r.Contains(time.Date(2024, time.March, 1, 0, 0, 0, 0, loc), loc))
	assert.False(t, r.Contains(time.Date(2024, time.February, 1, 4, 59, 0, 0, time.UTC), loc))
}

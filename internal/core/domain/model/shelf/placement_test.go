package shelf_test

import (
	"testing"
	"time"

	"forwarding/internal/core/domain/model/kernel"
	"forwarding/internal/core/domain/model/shelf"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlacement(t *testing.T) {
	at := time.Date(2024, time.April, 9, 15, 4, 0, 0, time.FixedZone("GET", 4*3600))

	t.Run("should normalize shelf code and time", func(t *testing.T) {
		p, err := shelf.NewPlacement(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), " a-12 ", kernel.NewUUID(), at)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "A-12", p.ShelfCode())
		assert.Equal(t, time.UTC, p.PlacedAt().Location())
		assert.True(t, at.Equal(p.PlacedAt()))
	})

	t.Run("should reject missing references and bad code", func(t *testing.T) {
		_, err := shelf.NewPlacement(kernel.NewUUID(), kernel.UUID{}, kernel.UUID{}, "shelf #1", kernel.UUID{}, at)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "order_id")
		assert.Contains(t, err.Error(), "branch_id")
		assert.Contains(t, err.Error(), "placed_by")
		assert.Contains(t, err.Error(), "is not a shelf code")
	})
}

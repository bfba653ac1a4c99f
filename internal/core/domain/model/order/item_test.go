package order_test

import (
	"testing"

	"forwarding/internal/core/domain/model/order"
	"forwarding/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItem(t *testing.T) {
	t.Run("should create item", func(t *testing.T) {
		item, err := order.NewItem(" Sneakers ", 2, 900, order.Dimensions{LengthCm: 35, WidthCm: 22, HeightCm: 14})

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "Sneakers", item.Description())
		assert.Equal(t, 2, item.Quantity())
		assert.Equal(t, 1800, item.TotalWeightGrams())
		assert.Equal(t, 14, item.Dimensions().HeightCm)
	})

	t.Run("should allow zero weight", func(t *testing.T) {
		_, err := order.NewItem("Letter", 1, 0, order.Dimensions{})

		require.NoError(t, err)
	})

	t.Run("should reject malformed item", func(t *testing.T) {
		_, err := order.NewItem("", 0, -5, order.Dimensions{LengthCm: -1})

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "item.description")
		assert.Contains(t, err.Error(), "item.quantity")
		assert.Contains(t, err.Error(), "item.weight_grams")
		assert.Contains(t, err.Error(), "item.dimensions")
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var item order.Item

		assert.Equal(t, order.ErrItemIsNotConstructed, item.Validate())
	})
}

func TestParseFulfillment(t *testing.T) {
	for _, f := range order.Fulfillments() {
		parsed, err := order.ParseFulfillment(f.String())

		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := order.ParseFulfillment("drone")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

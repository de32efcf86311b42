package item

import (
	"context"
	"testing"
	"time"

	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func TestPriceOn(t *testing.T) {
	oldEnd := date(2024, 12, 31)
	i := NewProduct(context.Background(), "WIDGET-1", "Widget", "hardware", "", []Price{
		{Amount: decimal.RequireFromString("25"), EffectiveFrom: date(2024, 1, 1), EffectiveTo: &oldEnd},
		{Amount: decimal.RequireFromString("30"), EffectiveFrom: date(2025, 1, 1)},
	})

	t.Run("price in effect on the date", func(t *testing.T) {
		price, ok := i.PriceOn(date(2024, 6, 1))
		require.True(t, ok)
		assert.True(t, price.Equal(decimal.RequireFromString("25")))

		price, ok = i.PriceOn(date(2025, 1, 1))
		require.True(t, ok)
		assert.True(t, price.Equal(decimal.RequireFromString("30")))
	})

	t.Run("no price in effect", func(t *testing.T) {
		_, ok := i.PriceOn(date(2023, 6, 1))
		assert.False(t, ok)
	})

	t.Run("overlapping entries pick the most recent effective date", func(t *testing.T) {
		overlapping := New(context.Background(), types.ItemTypeService, "SUPPORT-1", "Support", "services", "", []Price{
			{Amount: decimal.RequireFromString("100"), EffectiveFrom: date(2024, 1, 1)},
			{Amount: decimal.RequireFromString("110"), EffectiveFrom: date(2025, 1, 1)},
		})
		price, ok := overlapping.PriceOn(date(2025, 6, 1))
		require.True(t, ok)
		assert.True(t, price.Equal(decimal.RequireFromString("110")))
	})
}

func TestFactories(t *testing.T) {
	ctx := context.Background()

	product := NewProduct(ctx, "WIDGET-1", "Widget", "hardware", "STD-GOODS", nil)
	assert.Equal(t, types.ItemTypeProduct, product.Type)
	assert.NotEmpty(t, product.ID)
	require.NoError(t, product.Validate())

	service := NewService(ctx, "SUPPORT-1", "Support plan", "services", "", nil)
	assert.Equal(t, types.ItemTypeService, service.Type)

	t.Run("unknown type fails validation", func(t *testing.T) {
		unknown := New(ctx, types.ItemType("BUNDLE"), "B-1", "Bundle", "", "", nil)
		assert.Error(t, unknown.Validate())
	})
}

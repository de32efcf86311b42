package tax

import (
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

func TestRateOn(t *testing.T) {
	cutover := date(2025, 3, 31)
	hst := &Tax{
		Code:         "HST",
		Name:         "Harmonized Sales Tax",
		Jurisdiction: types.TaxJurisdictionProvincial,
		Rates: []TaxRate{
			{Rate: decimal.RequireFromString("0.15"), EffectiveFrom: date(2010, 7, 1), EffectiveTo: &cutover},
			{Rate: decimal.RequireFromString("0.14"), EffectiveFrom: date(2025, 4, 1)},
		},
	}

	t.Run("last day of old rate", func(t *testing.T) {
		r, ok := hst.RateOn(date(2025, 3, 31))
		require.True(t, ok)
		assert.True(t, r.Rate.Equal(decimal.RequireFromString("0.15")))
	})

	t.Run("first day of new rate", func(t *testing.T) {
		r, ok := hst.RateOn(date(2025, 4, 1))
		require.True(t, ok)
		assert.True(t, r.Rate.Equal(decimal.RequireFromString("0.14")))
	})

	t.Run("before any rate", func(t *testing.T) {
		_, ok := hst.RateOn(date(2009, 1, 1))
		assert.False(t, ok)
	})

	t.Run("no rates at all", func(t *testing.T) {
		empty := &Tax{Code: "GST", Jurisdiction: types.TaxJurisdictionFederal}
		_, ok := empty.RateOn(date(2025, 1, 1))
		assert.False(t, ok)
	})

	t.Run("overlapping periods pick the most recent effective date", func(t *testing.T) {
		overlapping := &Tax{
			Code:         "PST",
			Jurisdiction: types.TaxJurisdictionProvincial,
			Rates: []TaxRate{
				{Rate: decimal.RequireFromString("0.07"), EffectiveFrom: date(2013, 4, 1)},
				{Rate: decimal.RequireFromString("0.08"), EffectiveFrom: date(2020, 1, 1)},
			},
		}
		r, ok := overlapping.RateOn(date(2024, 6, 15))
		require.True(t, ok)
		assert.True(t, r.Rate.Equal(decimal.RequireFromString("0.08")))
	})
}

func TestAddRate(t *testing.T) {
	gst := &Tax{Code: "GST", Jurisdiction: types.TaxJurisdictionFederal}

	err := gst.AddRate(TaxRate{
		Rate:          decimal.RequireFromString("0.05"),
		EffectiveFrom: date(2008, 1, 1),
	})
	require.NoError(t, err)
	assert.Len(t, gst.Rates, 1)

	t.Run("rejects negative rate", func(t *testing.T) {
		err := gst.AddRate(TaxRate{
			Rate:          decimal.RequireFromString("-0.01"),
			EffectiveFrom: date(2020, 1, 1),
		})
		assert.Error(t, err)
	})

	t.Run("rejects effective date before GST introduction", func(t *testing.T) {
		err := gst.AddRate(TaxRate{
			Rate:          decimal.RequireFromString("0.07"),
			EffectiveFrom: date(1985, 1, 1),
		})
		assert.Error(t, err)
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		to := date(2019, 1, 1)
		err := gst.AddRate(TaxRate{
			Rate:          decimal.RequireFromString("0.05"),
			EffectiveFrom: date(2020, 1, 1),
			EffectiveTo:   &to,
		})
		assert.Error(t, err)
	})
}

package province

import (
	"testing"
	"time"

	"github.com/maplebill/maplebill/internal/domain/tax"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func testCatalog(t *testing.T) *Catalog {
	t.Helper()

	cutover := date(2025, 3, 31)
	catalog, err := NewCatalog([]*Province{
		{
			Code: "NS",
			Name: "Nova Scotia",
			Taxes: []*tax.Tax{{
				Code:         "HST",
				Name:         "Harmonized Sales Tax",
				Jurisdiction: types.TaxJurisdictionProvincial,
				Rates: []tax.TaxRate{
					{Rate: decimal.RequireFromString("0.15"), EffectiveFrom: date(2010, 7, 1), EffectiveTo: &cutover},
					{Rate: decimal.RequireFromString("0.14"), EffectiveFrom: date(2025, 4, 1)},
				},
			}},
		},
		{
			Code: "BC",
			Name: "British Columbia",
			Taxes: []*tax.Tax{
				{
					Code:         "GST",
					Name:         "Goods and Services Tax",
					Jurisdiction: types.TaxJurisdictionFederal,
					Rates: []tax.TaxRate{
						{Rate: decimal.RequireFromString("0.05"), EffectiveFrom: date(2008, 1, 1)},
					},
				},
				{
					Code:         "PST",
					Name:         "Provincial Sales Tax",
					Jurisdiction: types.TaxJurisdictionProvincial,
					Rates: []tax.TaxRate{
						{Rate: decimal.RequireFromString("0.07"), EffectiveFrom: date(2013, 4, 1)},
					},
				},
			},
		},
	})
	require.NoError(t, err)
	return catalog
}

func TestStandardTaxes(t *testing.T) {
	catalog := testCatalog(t)

	t.Run("nova scotia before rate change", func(t *testing.T) {
		taxes := catalog.StandardTaxes("NS", date(2025, 3, 31))
		require.Len(t, taxes, 1)
		assert.Equal(t, "HST", taxes[0].Code)
		assert.True(t, taxes[0].Rate.Equal(decimal.RequireFromString("0.15")))
	})

	t.Run("nova scotia after rate change", func(t *testing.T) {
		taxes := catalog.StandardTaxes("NS", date(2025, 4, 1))
		require.Len(t, taxes, 1)
		assert.True(t, taxes[0].Rate.Equal(decimal.RequireFromString("0.14")))
	})

	t.Run("both taxes for british columbia", func(t *testing.T) {
		taxes := catalog.StandardTaxes("BC", date(2025, 6, 1))
		require.Len(t, taxes, 2)
		assert.Equal(t, "GST", taxes[0].Code)
		assert.Equal(t, "PST", taxes[1].Code)
	})

	t.Run("tax with no rate in effect is skipped", func(t *testing.T) {
		taxes := catalog.StandardTaxes("BC", date(2010, 1, 1))
		require.Len(t, taxes, 1)
		assert.Equal(t, "GST", taxes[0].Code)
	})

	t.Run("unknown province yields empty list", func(t *testing.T) {
		assert.Empty(t, catalog.StandardTaxes("XX", date(2025, 6, 1)))
	})
}

func TestNewCatalog(t *testing.T) {
	t.Run("rejects duplicate provinces", func(t *testing.T) {
		_, err := NewCatalog([]*Province{
			{Code: "ON", Name: "Ontario"},
			{Code: "ON", Name: "Ontario again"},
		})
		assert.Error(t, err)
	})
}

func TestProvinces(t *testing.T) {
	catalog := testCatalog(t)

	provinces := catalog.Provinces()
	require.Len(t, provinces, 2)
	assert.Equal(t, "BC", provinces[0].Code)
	assert.Equal(t, "NS", provinces[1].Code)

	_, ok := catalog.Province("NS")
	assert.True(t, ok)
	_, ok = catalog.Province("XX")
	assert.False(t, ok)
}

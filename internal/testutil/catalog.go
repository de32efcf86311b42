package testutil

import (
	"time"

	"github.com/maplebill/maplebill/internal/domain/province"
	"github.com/maplebill/maplebill/internal/domain/tax"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

func date(year, month, day int) time.Time {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}

func newTax(code, name string, jurisdiction types.TaxJurisdiction, rates ...tax.TaxRate) *tax.Tax {
	return &tax.Tax{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TAX),
		Code:         code,
		Name:         name,
		Jurisdiction: jurisdiction,
		Rates:        rates,
	}
}

func rate(value string, from time.Time, to *time.Time) tax.TaxRate {
	return tax.TaxRate{
		Rate:          decimal.RequireFromString(value),
		EffectiveFrom: from,
		EffectiveTo:   to,
	}
}

// CanadianCatalog builds the standard Canadian province catalog used by
// tests. Rates mirror the real schedules closely enough for date-boundary
// testing; notably Nova Scotia's HST drop from 15% to 14% on 2025-04-01.
func CanadianCatalog() *province.Catalog {
	gstStart := date(1991, 1, 1)
	hstStart := date(1997, 4, 1)
	nsCutover := date(2025, 3, 31)

	gst := func() *tax.Tax {
		return newTax("GST", "Goods and Services Tax", types.TaxJurisdictionFederal,
			rate("0.05", gstStart, nil))
	}

	provinces := []*province.Province{
		{Code: "AB", Name: "Alberta", Taxes: []*tax.Tax{gst()}},
		{Code: "BC", Name: "British Columbia", Taxes: []*tax.Tax{
			gst(),
			newTax("PST", "Provincial Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.07", date(2013, 4, 1), nil)),
		}},
		{Code: "MB", Name: "Manitoba", Taxes: []*tax.Tax{
			gst(),
			newTax("RST", "Retail Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.07", date(2019, 7, 1), nil)),
		}},
		{Code: "NB", Name: "New Brunswick", Taxes: []*tax.Tax{
			newTax("HST", "Harmonized Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.15", date(2016, 7, 1), nil)),
		}},
		{Code: "NL", Name: "Newfoundland and Labrador", Taxes: []*tax.Tax{
			newTax("HST", "Harmonized Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.15", date(2016, 7, 1), nil)),
		}},
		{Code: "NS", Name: "Nova Scotia", Taxes: []*tax.Tax{
			newTax("HST", "Harmonized Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.15", hstStart, &nsCutover),
				rate("0.14", date(2025, 4, 1), nil)),
		}},
		{Code: "NT", Name: "Northwest Territories", Taxes: []*tax.Tax{gst()}},
		{Code: "NU", Name: "Nunavut", Taxes: []*tax.Tax{gst()}},
		{Code: "ON", Name: "Ontario", Taxes: []*tax.Tax{
			newTax("HST", "Harmonized Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.13", date(2010, 7, 1), nil)),
		}},
		{Code: "PE", Name: "Prince Edward Island", Taxes: []*tax.Tax{
			newTax("HST", "Harmonized Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.15", date(2016, 10, 1), nil)),
		}},
		{Code: "QC", Name: "Quebec", Taxes: []*tax.Tax{
			gst(),
			newTax("QST", "Quebec Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.09975", date(2013, 1, 1), nil)),
		}},
		{Code: "SK", Name: "Saskatchewan", Taxes: []*tax.Tax{
			gst(),
			newTax("PST", "Provincial Sales Tax", types.TaxJurisdictionProvincial,
				rate("0.06", date(2017, 3, 23), nil)),
		}},
		{Code: "YT", Name: "Yukon", Taxes: []*tax.Tax{gst()}},
	}

	catalog, err := province.NewCatalog(provinces)
	if err != nil {
		panic("failed to build test catalog: " + err.Error())
	}
	return catalog
}

package province

import (
	"sort"
	"time"

	"github.com/maplebill/maplebill/internal/domain/tax"
	ierr "github.com/maplebill/maplebill/internal/errors"
)

// Catalog is the immutable province-to-taxes configuration. It is constructed
// once at startup and passed into the tax resolution service, so tests can
// swap in their own catalog without touching global state.
type Catalog struct {
	provinces map[string]*Province
}

// NewCatalog builds a catalog from the given provinces
func NewCatalog(provinces []*Province) (*Catalog, error) {
	byCode := make(map[string]*Province, len(provinces))
	for _, p := range provinces {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		if _, ok := byCode[p.Code]; ok {
			return nil, ierr.NewError("duplicate province in catalog").
				WithHintf("Province %s is defined more than once", p.Code).
				WithReportableDetails(map[string]any{
					"province_code": p.Code,
				}).
				Mark(ierr.ErrValidation)
		}
		byCode[p.Code] = p
	}
	return &Catalog{provinces: byCode}, nil
}

// Province returns the province for the given code
func (c *Catalog) Province(code string) (*Province, bool) {
	p, ok := c.provinces[code]
	return p, ok
}

// Provinces returns all provinces sorted by code
func (c *Catalog) Provinces() []*Province {
	out := make([]*Province, 0, len(c.provinces))
	for _, p := range c.provinces {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}

// StandardTaxes returns the jurisdiction's standard tax list for the given
// date: one entry per configured tax that has a rate in effect. Taxes with no
// rate in effect on the date are skipped, not errored. An unknown province
// yields an empty list.
func (c *Catalog) StandardTaxes(provinceCode string, date time.Time) []tax.AppliedTax {
	p, ok := c.provinces[provinceCode]
	if !ok {
		return nil
	}

	applied := make([]tax.AppliedTax, 0, len(p.Taxes))
	for _, t := range p.Taxes {
		rate, ok := t.RateOn(date)
		if !ok {
			continue
		}
		applied = append(applied, tax.AppliedTax{
			Code: t.Code,
			Name: t.Name,
			Rate: rate.Rate,
		})
	}
	return applied
}

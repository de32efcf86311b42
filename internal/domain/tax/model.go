package tax

import (
	"time"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// minEffectiveFrom is the sanity bound for rate effective dates. The GST was
// introduced on 1991-01-01, so no Canadian sales tax rate can predate it.
var minEffectiveFrom = time.Date(1991, 1, 1, 0, 0, 0, 0, time.UTC)

// TaxRate is a rate value effective over [EffectiveFrom, EffectiveTo].
// Immutable once created; rates are only ever appended to a Tax.
type TaxRate struct {
	Rate          decimal.Decimal `json:"rate"`
	EffectiveFrom time.Time       `json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to,omitempty"`
}

// InEffectOn reports whether the rate covers the given date
func (r TaxRate) InEffectOn(date time.Time) bool {
	return types.IsWithinWindow(date, r.EffectiveFrom, r.EffectiveTo)
}

func (r TaxRate) Validate() error {
	if r.Rate.IsNegative() {
		return ierr.NewError("invalid tax rate").
			WithHint("Rate must be non negative").
			Mark(ierr.ErrValidation)
	}

	if r.EffectiveFrom.Before(minEffectiveFrom) {
		return ierr.NewError("invalid tax rate").
			WithHintf("Effective date must not be before %s", minEffectiveFrom.Format(time.DateOnly)).
			Mark(ierr.ErrValidation)
	}

	if r.EffectiveTo != nil && r.EffectiveTo.Before(r.EffectiveFrom) {
		return ierr.NewError("invalid tax rate").
			WithHint("Expiration date must not be before the effective date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Tax is a named, coded tax owning an ordered set of rate periods
type Tax struct {
	ID           string                `json:"id"`
	Code         string                `json:"code"`
	Name         string                `json:"name"`
	Jurisdiction types.TaxJurisdiction `json:"jurisdiction"`
	Rates        []TaxRate             `json:"rates"`
	types.BaseModel
}

// AddRate appends a rate period. Existing periods are never mutated in place.
func (t *Tax) AddRate(rate TaxRate) error {
	if err := rate.Validate(); err != nil {
		return err
	}
	t.Rates = append(t.Rates, rate)
	return nil
}

// RateOn returns the rate in effect on the given date: among all rate periods
// covering the date, the one with the greatest effective-from wins. The
// second return value is false when no period covers the date.
func (t *Tax) RateOn(date time.Time) (TaxRate, bool) {
	var best TaxRate
	found := false
	for _, r := range t.Rates {
		if !r.InEffectOn(date) {
			continue
		}
		if !found || r.EffectiveFrom.After(best.EffectiveFrom) {
			best = r
			found = true
		}
	}
	return best, found
}

func (t *Tax) Validate() error {
	if t.Code == "" {
		return ierr.NewError("invalid tax").
			WithHint("Code is required").
			Mark(ierr.ErrValidation)
	}

	if err := t.Jurisdiction.Validate(); err != nil {
		return err
	}

	for _, r := range t.Rates {
		if err := r.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// AppliedTax is a resolved tax entry for a line item: the code and name of
// the tax plus the rate in effect on the resolution date.
type AppliedTax struct {
	Code string          `json:"code"`
	Name string          `json:"name"`
	Rate decimal.Decimal `json:"rate"`
}

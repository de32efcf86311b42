package item

import (
	"time"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// Price is one entry in an item's price schedule, effective over a window
type Price struct {
	Amount        decimal.Decimal `json:"amount"`
	EffectiveFrom time.Time       `json:"effective_from"`
	EffectiveTo   *time.Time      `json:"effective_to,omitempty"`
}

func (p Price) Validate() error {
	if p.Amount.IsNegative() {
		return ierr.NewError("invalid price").
			WithHint("Amount must be non negative").
			Mark(ierr.ErrValidation)
	}

	if p.EffectiveTo != nil && p.EffectiveTo.Before(p.EffectiveFrom) {
		return ierr.NewError("invalid price").
			WithHint("Expiration date must not be before the effective date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

// Item is a catalog item described as a tagged variant: the ItemType selects
// the factory that builds it, there is no type hierarchy.
type Item struct {
	ID       string         `json:"id"`
	SKU      string         `json:"sku"`
	Name     string         `json:"name"`
	Type     types.ItemType `json:"type"`
	Category string         `json:"category"`
	TaxCode  string         `json:"tax_code,omitempty"`
	Prices   []Price        `json:"prices"`
	types.BaseModel
}

// PriceOn returns the price in effect on the given date: among all schedule
// entries covering the date, the one with the greatest effective-from wins.
func (i *Item) PriceOn(date time.Time) (decimal.Decimal, bool) {
	var best Price
	found := false
	for _, p := range i.Prices {
		if !types.IsWithinWindow(date, p.EffectiveFrom, p.EffectiveTo) {
			continue
		}
		if !found || p.EffectiveFrom.After(best.EffectiveFrom) {
			best = p
			found = true
		}
	}
	return best.Amount, found
}

func (i *Item) Validate() error {
	if i.Name == "" {
		return ierr.NewError("invalid item").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}

	if err := i.Type.Validate(); err != nil {
		return err
	}

	for _, p := range i.Prices {
		if err := p.Validate(); err != nil {
			return err
		}
	}

	return nil
}

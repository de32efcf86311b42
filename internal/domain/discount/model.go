package discount

import (
	"time"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// Discount is a pure calculator over a base amount. Scope decides whether it
// attaches to a line item or to the order as a whole.
type Discount struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Type            types.DiscountType  `json:"type"`
	Scope           types.DiscountScope `json:"scope"`
	Value           decimal.Decimal     `json:"value"`
	MinimumAmount   *decimal.Decimal    `json:"minimum_amount,omitempty"`
	MaximumDiscount *decimal.Decimal    `json:"maximum_discount,omitempty"`
	Active          bool                `json:"active"`
	StartDate       *time.Time          `json:"start_date,omitempty"`
	EndDate         *time.Time          `json:"end_date,omitempty"`
	types.BaseModel
}

// AmountOn returns the discount amount for the given base on the given
// evaluation date, rounded to 2 decimals. Returns zero when the discount is
// inactive, outside its validity window, or the base is below the minimum.
func (d *Discount) AmountOn(baseAmount decimal.Decimal, date time.Time) decimal.Decimal {
	if !d.Active {
		return decimal.Zero
	}

	if d.StartDate != nil && date.Before(*d.StartDate) {
		return decimal.Zero
	}
	if d.EndDate != nil && date.After(*d.EndDate) {
		return decimal.Zero
	}

	if d.MinimumAmount != nil && baseAmount.LessThan(*d.MinimumAmount) {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch d.Type {
	case types.DiscountTypePercentage:
		amount = baseAmount.Mul(d.Value)
	case types.DiscountTypeFixedAmount:
		amount = d.Value
	default:
		return decimal.Zero
	}

	if d.MaximumDiscount != nil && amount.GreaterThan(*d.MaximumDiscount) {
		amount = *d.MaximumDiscount
	}

	return types.RoundCurrency(amount)
}

func (d *Discount) Validate() error {
	if err := d.Type.Validate(); err != nil {
		return err
	}

	if err := d.Scope.Validate(); err != nil {
		return err
	}

	if d.Value.IsNegative() {
		return ierr.NewError("invalid discount").
			WithHint("Value must be non negative").
			Mark(ierr.ErrValidation)
	}

	if d.StartDate != nil && d.EndDate != nil && d.EndDate.Before(*d.StartDate) {
		return ierr.NewError("invalid discount").
			WithHint("End date must not be before the start date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

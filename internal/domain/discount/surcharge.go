package discount

import (
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
	"github.com/shopspring/decimal"
)

// Surcharge is a flat-plus-percentage charge applied on top of an order total
type Surcharge struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	FixedAmount    decimal.Decimal `json:"fixed_amount"`
	PercentageRate decimal.Decimal `json:"percentage_rate"`
	Active         bool            `json:"active"`
	types.BaseModel
}

// CalculateAmount returns the surcharge for the given base, rounded to
// 2 decimals, or zero when inactive
func (s *Surcharge) CalculateAmount(baseAmount decimal.Decimal) decimal.Decimal {
	if !s.Active {
		return decimal.Zero
	}
	return types.RoundCurrency(s.FixedAmount.Add(baseAmount.Mul(s.PercentageRate)))
}

func (s *Surcharge) Validate() error {
	if s.FixedAmount.IsNegative() || s.PercentageRate.IsNegative() {
		return ierr.NewError("invalid surcharge").
			WithHint("Amounts must be non negative").
			Mark(ierr.ErrValidation)
	}
	return nil
}

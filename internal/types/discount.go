package types

import (
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/samber/lo"
)

// DiscountType defines how a discount value is interpreted
type DiscountType string

const (
	// DiscountTypePercentage interprets the value as a fraction of the base amount, e.g. 0.10 for 10%
	DiscountTypePercentage DiscountType = "PERCENTAGE"
	// DiscountTypeFixedAmount interprets the value as an absolute currency amount
	DiscountTypeFixedAmount DiscountType = "FIXED_AMOUNT"
)

func (t DiscountType) String() string {
	return string(t)
}

func (t DiscountType) Validate() error {
	allowed := []DiscountType{
		DiscountTypePercentage,
		DiscountTypeFixedAmount,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid discount type").
			WithHint("Please provide a valid discount type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// DiscountScope defines the level at which a discount applies
type DiscountScope string

const (
	DiscountScopePerItem  DiscountScope = "PER_ITEM"
	DiscountScopePerOrder DiscountScope = "PER_ORDER"
)

func (s DiscountScope) String() string {
	return string(s)
}

func (s DiscountScope) Validate() error {
	allowed := []DiscountScope{
		DiscountScopePerItem,
		DiscountScopePerOrder,
	}
	if !lo.Contains(allowed, s) {
		return ierr.NewError("invalid discount scope").
			WithHint("Please provide a valid discount scope").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

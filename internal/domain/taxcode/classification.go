package taxcode

import (
	"time"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
)

// TaxClassification links one item to one tax code over a date window. An
// expired classification behaves exactly like a missing one: resolution falls
// back to the item's intrinsic tax code.
type TaxClassification struct {
	ID         string     `json:"id"`
	ItemID     string     `json:"item_id"`
	TaxCode    string     `json:"tax_code"`
	AssignedAt time.Time  `json:"assigned_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	types.BaseModel
}

// IsValidOn reports whether the classification's window covers the date
func (c *TaxClassification) IsValidOn(date time.Time) bool {
	return types.IsWithinWindow(date, c.AssignedAt, c.ExpiresAt)
}

func (c *TaxClassification) Validate() error {
	if c.ItemID == "" {
		return ierr.NewError("invalid tax classification").
			WithHint("Item ID is required").
			Mark(ierr.ErrValidation)
	}

	if c.TaxCode == "" {
		return ierr.NewError("invalid tax classification").
			WithHint("Tax code is required").
			Mark(ierr.ErrValidation)
	}

	if c.ExpiresAt != nil && c.ExpiresAt.Before(c.AssignedAt) {
		return ierr.NewError("invalid tax classification").
			WithHint("Expiration date must not be before the assigned date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

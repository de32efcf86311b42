package taxcode

import (
	"time"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
)

// TaxCode is a catalog entry describing the tax treatment for an item
// category over a validity window.
type TaxCode struct {
	ID            string             `json:"id"`
	Code          string             `json:"code"`
	Treatment     types.TaxTreatment `json:"treatment"`
	ItemCategory  string             `json:"item_category"`
	EffectiveFrom time.Time          `json:"effective_from"`
	EffectiveTo   *time.Time         `json:"effective_to,omitempty"`
	Active        bool               `json:"active"`
	types.BaseModel
}

// IsValidOn reports whether the code's validity window covers the date
func (c *TaxCode) IsValidOn(date time.Time) bool {
	return types.IsWithinWindow(date, c.EffectiveFrom, c.EffectiveTo)
}

func (c *TaxCode) Validate() error {
	if c.Code == "" {
		return ierr.NewError("invalid tax code").
			WithHint("Code is required").
			Mark(ierr.ErrValidation)
	}

	if err := c.Treatment.Validate(); err != nil {
		return err
	}

	if c.EffectiveTo != nil && c.EffectiveTo.Before(c.EffectiveFrom) {
		return ierr.NewError("invalid tax code").
			WithHint("Expiration date must not be before the effective date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

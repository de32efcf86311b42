package customer

import (
	"time"

	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/maplebill/maplebill/internal/types"
)

// Customer represents the customer domain model
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	types.BaseModel
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return ierr.NewError("invalid customer").
			WithHint("Name is required").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TaxProfile captures a customer's tax situation: the province whose rules
// govern their supply and whether they are eligible for exemption over a
// validity window.
type TaxProfile struct {
	ID                string     `json:"id"`
	CustomerID        string     `json:"customer_id"`
	RecipientStatus   string     `json:"recipient_status,omitempty"`
	TaxProvince       string     `json:"tax_province"`
	ExemptionEligible bool       `json:"exemption_eligible"`
	EffectiveFrom     time.Time  `json:"effective_from"`
	EffectiveTo       *time.Time `json:"effective_to,omitempty"`
	types.BaseModel
}

// QualifiesForExemption reports whether the customer is exempt from tax on
// the given date. An exempt customer short-circuits all tax resolution.
func (p *TaxProfile) QualifiesForExemption(date time.Time) bool {
	if !p.ExemptionEligible {
		return false
	}
	return types.IsWithinWindow(date, p.EffectiveFrom, p.EffectiveTo)
}

func (p *TaxProfile) Validate() error {
	if p.CustomerID == "" {
		return ierr.NewError("invalid tax profile").
			WithHint("Customer ID is required").
			Mark(ierr.ErrValidation)
	}

	if p.TaxProvince == "" {
		return ierr.NewError("invalid tax profile").
			WithHint("Tax province is required").
			Mark(ierr.ErrValidation)
	}

	if p.EffectiveTo != nil && p.EffectiveTo.Before(p.EffectiveFrom) {
		return ierr.NewError("invalid tax profile").
			WithHint("Expiration date must not be before the effective date").
			Mark(ierr.ErrValidation)
	}

	return nil
}

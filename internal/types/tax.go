package types

import (
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/samber/lo"
)

// TaxJurisdiction identifies the level of government that levies a tax
type TaxJurisdiction string

const (
	TaxJurisdictionFederal    TaxJurisdiction = "FEDERAL"
	TaxJurisdictionProvincial TaxJurisdiction = "PROVINCIAL"
)

func (j TaxJurisdiction) String() string {
	return string(j)
}

func (j TaxJurisdiction) Validate() error {
	allowed := []TaxJurisdiction{
		TaxJurisdictionFederal,
		TaxJurisdictionProvincial,
	}
	if !lo.Contains(allowed, j) {
		return ierr.NewError("invalid tax jurisdiction").
			WithHint("Please provide a valid tax jurisdiction").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TaxTreatment describes how a tax code affects the taxes levied on an item.
//
// ZERO_RATED is distinct from EXEMPT even though both levy no money: a
// zero-rated item still carries the jurisdiction's tax codes at a 0 rate for
// compliance reporting, an exempt item carries none.
type TaxTreatment string

const (
	TaxTreatmentStandard   TaxTreatment = "STANDARD"
	TaxTreatmentZeroRated  TaxTreatment = "ZERO_RATED"
	TaxTreatmentExempt     TaxTreatment = "EXEMPT"
	TaxTreatmentOutOfScope TaxTreatment = "OUT_OF_SCOPE"
)

func (t TaxTreatment) String() string {
	return string(t)
}

func (t TaxTreatment) Validate() error {
	allowed := []TaxTreatment{
		TaxTreatmentStandard,
		TaxTreatmentZeroRated,
		TaxTreatmentExempt,
		TaxTreatmentOutOfScope,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid tax treatment").
			WithHint("Please provide a valid tax treatment").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

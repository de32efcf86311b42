package province

import (
	"github.com/maplebill/maplebill/internal/domain/tax"
	ierr "github.com/maplebill/maplebill/internal/errors"
)

// Province maps a jurisdiction to the taxes levied there, e.g. BC carries
// GST and PST while NS carries a single HST. Static seed configuration,
// read-only at runtime.
type Province struct {
	Code  string     `json:"code"`
	Name  string     `json:"name"`
	Taxes []*tax.Tax `json:"taxes"`
}

func (p *Province) Validate() error {
	if p.Code == "" {
		return ierr.NewError("invalid province").
			WithHint("Code is required").
			Mark(ierr.ErrValidation)
	}

	for _, t := range p.Taxes {
		if err := t.Validate(); err != nil {
			return err
		}
	}

	return nil
}

package types

import (
	ierr "github.com/maplebill/maplebill/internal/errors"
	"github.com/samber/lo"
)

// ItemType tags a catalog item variant. It selects the item factory at
// creation time instead of an inheritance hierarchy.
type ItemType string

const (
	ItemTypeProduct ItemType = "PRODUCT"
	ItemTypeService ItemType = "SERVICE"
)

func (t ItemType) String() string {
	return string(t)
}

func (t ItemType) Validate() error {
	allowed := []ItemType{
		ItemTypeProduct,
		ItemTypeService,
	}
	if !lo.Contains(allowed, t) {
		return ierr.NewError("invalid item type").
			WithHint("Please provide a valid item type").
			WithReportableDetails(map[string]any{
				"allowed": allowed,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

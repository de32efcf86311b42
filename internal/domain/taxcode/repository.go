package taxcode

import (
	"context"
)

// Repository defines the interface for tax code persistence operations.
// GetByCode returns a not-found error for unknown codes; resolution treats
// that as a normal fallback outcome, not a failure.
type Repository interface {
	Create(ctx context.Context, code *TaxCode) error
	Get(ctx context.Context, id string) (*TaxCode, error)
	GetByCode(ctx context.Context, code string) (*TaxCode, error)
	List(ctx context.Context) ([]*TaxCode, error)
	Update(ctx context.Context, code *TaxCode) error
}

// ClassificationRepository defines the interface for item classification
// persistence operations
type ClassificationRepository interface {
	Create(ctx context.Context, classification *TaxClassification) error
	GetByItemID(ctx context.Context, itemID string) (*TaxClassification, error)
	Delete(ctx context.Context, classification *TaxClassification) error
}

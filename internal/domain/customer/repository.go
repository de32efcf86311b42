package customer

import (
	"context"
)

// Repository defines the interface for customer persistence operations
type Repository interface {
	Create(ctx context.Context, customer *Customer) error
	Get(ctx context.Context, id string) (*Customer, error)
	Update(ctx context.Context, customer *Customer) error

	CreateTaxProfile(ctx context.Context, profile *TaxProfile) error
	// GetTaxProfile returns the customer's tax profile, or a not-found error
	// when the customer has none
	GetTaxProfile(ctx context.Context, customerID string) (*TaxProfile, error)
}

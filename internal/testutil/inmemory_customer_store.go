package testutil

import (
	"context"

	"github.com/maplebill/maplebill/internal/domain/customer"
	ierr "github.com/maplebill/maplebill/internal/errors"
)

// InMemoryCustomerStore implements customer.Repository
type InMemoryCustomerStore struct {
	*InMemoryStore[*customer.Customer]
	profiles *InMemoryStore[*customer.TaxProfile]
}

func NewInMemoryCustomerStore() *InMemoryCustomerStore {
	return &InMemoryCustomerStore{
		InMemoryStore: NewInMemoryStore[*customer.Customer](),
		profiles:      NewInMemoryStore[*customer.TaxProfile](),
	}
}

func (s *InMemoryCustomerStore) Create(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ierr.NewError("customer cannot be nil").
			WithHint("Customer data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryCustomerStore) Get(ctx context.Context, id string) (*customer.Customer, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryCustomerStore) Update(ctx context.Context, c *customer.Customer) error {
	if c == nil {
		return ierr.NewError("customer cannot be nil").
			WithHint("Customer data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, c.ID, c)
}

// CreateTaxProfile stores the profile keyed by customer ID so lookups by
// customer stay O(1); one profile per customer.
func (s *InMemoryCustomerStore) CreateTaxProfile(ctx context.Context, profile *customer.TaxProfile) error {
	if profile == nil {
		return ierr.NewError("tax profile cannot be nil").
			WithHint("Tax profile data is required").
			Mark(ierr.ErrValidation)
	}
	return s.profiles.Create(ctx, profile.CustomerID, profile)
}

func (s *InMemoryCustomerStore) GetTaxProfile(ctx context.Context, customerID string) (*customer.TaxProfile, error) {
	return s.profiles.Get(ctx, customerID)
}

func (s *InMemoryCustomerStore) Clear() {
	s.InMemoryStore.Clear()
	s.profiles.Clear()
}

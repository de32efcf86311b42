package testutil

import (
	"context"

	"github.com/maplebill/maplebill/internal/domain/invoice"
	ierr "github.com/maplebill/maplebill/internal/errors"
)

// InMemoryInvoiceStore implements invoice.Repository
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			WithHint("Invoice data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, inv.ID, inv)
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").
			WithHint("Invoice data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, inv.ID, inv)
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, customerID string) ([]*invoice.Invoice, error) {
	return s.InMemoryStore.List(ctx, customerID,
		func(ctx context.Context, inv *invoice.Invoice, filter interface{}) bool {
			cid, ok := filter.(string)
			if !ok || cid == "" {
				return true
			}
			return inv.CustomerID == cid
		},
		func(i, j *invoice.Invoice) bool {
			return i.CreatedAt.Before(j.CreatedAt)
		})
}

package testutil

import (
	"context"

	"github.com/maplebill/maplebill/internal/domain/taxcode"
	ierr "github.com/maplebill/maplebill/internal/errors"
)

// InMemoryTaxCodeStore implements taxcode.Repository
type InMemoryTaxCodeStore struct {
	*InMemoryStore[*taxcode.TaxCode]
}

func NewInMemoryTaxCodeStore() *InMemoryTaxCodeStore {
	return &InMemoryTaxCodeStore{
		InMemoryStore: NewInMemoryStore[*taxcode.TaxCode](),
	}
}

func (s *InMemoryTaxCodeStore) Create(ctx context.Context, tc *taxcode.TaxCode) error {
	if tc == nil {
		return ierr.NewError("tax code cannot be nil").
			WithHint("Tax code data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, tc.ID, tc)
}

func (s *InMemoryTaxCodeStore) Get(ctx context.Context, id string) (*taxcode.TaxCode, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryTaxCodeStore) GetByCode(ctx context.Context, code string) (*taxcode.TaxCode, error) {
	codes, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	for _, tc := range codes {
		if tc.Code == code {
			return tc, nil
		}
	}

	return nil, ierr.NewError("tax code not found").
		WithHintf("Tax code %s was not found", code).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryTaxCodeStore) List(ctx context.Context) ([]*taxcode.TaxCode, error) {
	return s.InMemoryStore.List(ctx, nil, nil, func(i, j *taxcode.TaxCode) bool {
		return i.Code < j.Code
	})
}

func (s *InMemoryTaxCodeStore) Update(ctx context.Context, tc *taxcode.TaxCode) error {
	if tc == nil {
		return ierr.NewError("tax code cannot be nil").
			WithHint("Tax code data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, tc.ID, tc)
}

// InMemoryClassificationStore implements taxcode.ClassificationRepository.
// Classifications are keyed by item ID; one classification per item.
type InMemoryClassificationStore struct {
	*InMemoryStore[*taxcode.TaxClassification]
}

func NewInMemoryClassificationStore() *InMemoryClassificationStore {
	return &InMemoryClassificationStore{
		InMemoryStore: NewInMemoryStore[*taxcode.TaxClassification](),
	}
}

func (s *InMemoryClassificationStore) Create(ctx context.Context, c *taxcode.TaxClassification) error {
	if c == nil {
		return ierr.NewError("classification cannot be nil").
			WithHint("Classification data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, c.ItemID, c)
}

func (s *InMemoryClassificationStore) GetByItemID(ctx context.Context, itemID string) (*taxcode.TaxClassification, error) {
	return s.InMemoryStore.Get(ctx, itemID)
}

func (s *InMemoryClassificationStore) Delete(ctx context.Context, c *taxcode.TaxClassification) error {
	if c == nil {
		return ierr.NewError("classification cannot be nil").
			WithHint("Classification data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Delete(ctx, c.ItemID)
}

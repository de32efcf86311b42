package testutil

import (
	"context"

	"github.com/maplebill/maplebill/internal/domain/item"
	ierr "github.com/maplebill/maplebill/internal/errors"
)

// InMemoryItemStore implements item.Repository
type InMemoryItemStore struct {
	*InMemoryStore[*item.Item]
}

func NewInMemoryItemStore() *InMemoryItemStore {
	return &InMemoryItemStore{
		InMemoryStore: NewInMemoryStore[*item.Item](),
	}
}

func (s *InMemoryItemStore) Create(ctx context.Context, i *item.Item) error {
	if i == nil {
		return ierr.NewError("item cannot be nil").
			WithHint("Item data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, i.ID, i)
}

func (s *InMemoryItemStore) Get(ctx context.Context, id string) (*item.Item, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryItemStore) GetBySKU(ctx context.Context, sku string) (*item.Item, error) {
	items, err := s.InMemoryStore.List(ctx, nil, nil, nil)
	if err != nil {
		return nil, err
	}

	for _, i := range items {
		if i.SKU == sku {
			return i, nil
		}
	}

	return nil, ierr.NewError("item not found").
		WithHintf("Item with SKU %s was not found", sku).
		Mark(ierr.ErrNotFound)
}

func (s *InMemoryItemStore) List(ctx context.Context) ([]*item.Item, error) {
	return s.InMemoryStore.List(ctx, nil, nil, func(i, j *item.Item) bool {
		return i.SKU < j.SKU
	})
}

func (s *InMemoryItemStore) Update(ctx context.Context, i *item.Item) error {
	if i == nil {
		return ierr.NewError("item cannot be nil").
			WithHint("Item data is required").
			Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Update(ctx, i.ID, i)
}

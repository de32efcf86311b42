package item

import (
	"context"

	"github.com/maplebill/maplebill/internal/types"
)

// NewProduct builds a product catalog item
func NewProduct(ctx context.Context, sku, name, category, taxCode string, prices []Price) *Item {
	return newItem(ctx, types.ItemTypeProduct, sku, name, category, taxCode, prices)
}

// NewService builds a service catalog item
func NewService(ctx context.Context, sku, name, category, taxCode string, prices []Price) *Item {
	return newItem(ctx, types.ItemTypeService, sku, name, category, taxCode, prices)
}

// New builds an item for the given type tag. Unknown types fail validation
// downstream rather than here.
func New(ctx context.Context, itemType types.ItemType, sku, name, category, taxCode string, prices []Price) *Item {
	return newItem(ctx, itemType, sku, name, category, taxCode, prices)
}

func newItem(ctx context.Context, itemType types.ItemType, sku, name, category, taxCode string, prices []Price) *Item {
	return &Item{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ITEM),
		SKU:       sku,
		Name:      name,
		Type:      itemType,
		Category:  category,
		TaxCode:   taxCode,
		Prices:    prices,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

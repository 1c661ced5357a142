package products

import (
	"context"
)

// Repository defines storage operations for the product→SKU registry.
type Repository interface {
	// Create inserts a new registry entry.
	Create(ctx context.Context, entry *ProductSKU) error

	// GetByProduct returns the entry for a product.
	// Returns apperror CodeNotFound if the product has no SKU yet.
	GetByProduct(ctx context.Context, productName string) (*ProductSKU, error)

	// SKUExists reports whether a SKU is already assigned to any product.
	SKUExists(ctx context.Context, sku string) (bool, error)

	// List returns all registry entries.
	List(ctx context.Context) ([]ProductSKU, error)
}

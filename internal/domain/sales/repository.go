package sales

import (
	"context"

	"kardex/internal/core/id"
)

// Repository defines storage operations for sale records.
type Repository interface {
	Create(ctx context.Context, sale *Sale) error

	// GetByID returns a sale by internal id.
	// Returns apperror CodeNotFound if absent.
	GetByID(ctx context.Context, saleID id.ID) (*Sale, error)

	Update(ctx context.Context, sale *Sale) error
	Delete(ctx context.Context, saleID id.ID) error
	List(ctx context.Context) ([]Sale, error)
}

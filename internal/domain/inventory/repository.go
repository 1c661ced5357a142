package inventory

import (
	"context"

	"kardex/internal/core/id"
	"kardex/internal/core/types"
)

// Repository defines storage operations for inventory lots.
//
// The ...ForUpdate methods take row locks and must be called inside a
// transaction; they are the only reads the sales and replenishment ledgers
// may base a debit on.
type Repository interface {
	Create(ctx context.Context, lot *Lot) error

	// GetByID returns a lot by internal id.
	// Returns apperror CodeNotFound if absent.
	GetByID(ctx context.Context, lotID id.ID) (*Lot, error)

	// ExistsByPurchaseRef reports whether a lot is already bound to the ref.
	ExistsByPurchaseRef(ctx context.Context, purchaseRef int64) (bool, error)

	List(ctx context.Context) ([]Lot, error)
	ListByProduct(ctx context.Context, productName string) ([]Lot, error)

	// ListBySKUForUpdate returns the product's lots by SKU with row locks,
	// ordered FIFO: oldest received_date first, creation order on ties.
	ListBySKUForUpdate(ctx context.Context, sku string) ([]Lot, error)

	// ListByProductForUpdate returns the product's lots with row locks,
	// ordered by descending on-hand quantity (largest first).
	ListByProductForUpdate(ctx context.Context, productName string) ([]Lot, error)

	// UpdateQuantity sets a lot's on-hand quantity. The new value must be
	// non-negative; the storage layer enforces this as a final guard.
	UpdateQuantity(ctx context.Context, lotID id.ID, quantity int64) error

	// UpdateSalePriceByProduct sets the sale price on every lot of the
	// product and returns the number of lots touched.
	UpdateSalePriceByProduct(ctx context.Context, productName string, price types.Money) (int64, error)

	// DeleteByProduct removes all lots of a product and returns the count.
	DeleteByProduct(ctx context.Context, productName string) (int64, error)

	// DeleteByPurchaseRef removes the lot bound to a purchase, if any.
	// A missing lot is not an error (the purchase may be unbound).
	DeleteByPurchaseRef(ctx context.Context, purchaseRef int64) error

	// AggregateByProduct computes the live per-product aggregation.
	// Never cached: lots mutate under sale/replenishment traffic.
	AggregateByProduct(ctx context.Context) ([]ProductStock, error)
}

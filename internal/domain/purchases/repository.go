package purchases

import (
	"context"

	"kardex/internal/core/id"
)

// Repository defines storage operations for purchases.
type Repository interface {
	Create(ctx context.Context, p *Purchase) error

	// GetByID returns a purchase by internal id.
	// Returns apperror CodeNotFound if absent.
	GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error)

	// GetByRef returns a purchase by its 6-digit external code.
	// Returns apperror CodeNotFound if absent.
	GetByRef(ctx context.Context, purchaseRef int64) (*Purchase, error)

	Update(ctx context.Context, p *Purchase) error
	Delete(ctx context.Context, purchaseID id.ID) error

	List(ctx context.Context) ([]Purchase, error)

	// ExistsByRef reports whether a purchase_ref is taken.
	// Used as the collision predicate during reference generation.
	ExistsByRef(ctx context.Context, purchaseRef int64) (bool, error)

	// ListUnboundRefs returns purchases with no inventory lot yet
	// (anti-join on purchase_ref), for the binding UI/API.
	ListUnboundRefs(ctx context.Context) ([]UnboundPurchase, error)
}

// UnboundPurchase is a projection of a purchase awaiting binding.
type UnboundPurchase struct {
	PurchaseRef int64  `db:"purchase_ref" json:"purchaseRef"`
	ProductName string `db:"product_name" json:"productName"`
}

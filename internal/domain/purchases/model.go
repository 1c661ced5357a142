// Package purchases provides the purchase ledger: supplier purchase orders,
// the source of truth for ordered quantity and unit cost.
package purchases

import (
	"context"
	"strings"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/types"
)

// Purchase represents a supplier purchase order.
//
// Once a purchase is bound into an inventory lot, the lot carries a snapshot
// of unit cost and quantity; later edits here never flow into the lot.
type Purchase struct {
	ID id.ID `db:"id" json:"id"`

	// PurchaseRef is the unique 6-digit external code.
	PurchaseRef int64 `db:"purchase_ref" json:"purchaseRef"`

	Supplier    string `db:"supplier" json:"supplier"`
	ProductName string `db:"product_name" json:"productName"`

	// OrderedQuantity is whole units, always positive.
	OrderedQuantity int64 `db:"ordered_quantity" json:"orderedQuantity"`

	// UnitCost is the supplier's price per unit.
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	OrderDate            time.Time `db:"order_date" json:"orderDate"`
	ExpectedDeliveryDate time.Time `db:"expected_delivery_date" json:"expectedDeliveryDate"`

	// SKU is assigned lazily: set at creation only if the product already
	// has a registered SKU, otherwise when the purchase is bound.
	SKU *string `db:"sku" json:"sku,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// CreateInput carries the caller-supplied fields for a new purchase.
type CreateInput struct {
	Supplier             string
	ProductName          string
	OrderedQuantity      int64
	UnitCost             types.Money
	ExpectedDeliveryDate time.Time
}

// UpdateInput carries the full field set for a replace-style update.
type UpdateInput struct {
	Supplier             string
	ProductName          string
	OrderedQuantity      int64
	UnitCost             types.Money
	ExpectedDeliveryDate time.Time
}

// Validate checks the input invariants shared by create and update.
func (in CreateInput) Validate(ctx context.Context) error {
	return validateFields(in.Supplier, in.ProductName, in.OrderedQuantity, in.UnitCost, in.ExpectedDeliveryDate)
}

// Validate checks the input invariants shared by create and update.
func (in UpdateInput) Validate(ctx context.Context) error {
	return validateFields(in.Supplier, in.ProductName, in.OrderedQuantity, in.UnitCost, in.ExpectedDeliveryDate)
}

func validateFields(supplier, productName string, quantity int64, unitCost types.Money, delivery time.Time) error {
	if strings.TrimSpace(supplier) == "" {
		return apperror.NewValidation("supplier is required").
			WithDetail("field", "supplier")
	}
	if strings.TrimSpace(productName) == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}
	if quantity <= 0 {
		return apperror.NewValidation("ordered quantity must be positive").
			WithDetail("field", "orderedQuantity")
	}
	if unitCost.IsNegative() {
		return apperror.NewValidation("unit cost cannot be negative").
			WithDetail("field", "unitCost")
	}
	if delivery.IsZero() {
		return apperror.NewValidation("expected delivery date is required").
			WithDetail("field", "expectedDeliveryDate")
	}
	return nil
}

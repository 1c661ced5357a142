// Package sales provides the sales ledger: recorded sales that debit the
// inventory ledger lot by lot.
package sales

import (
	"context"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/types"
)

// Sale is one recorded sale. UnitPrice and TotalAmount are snapshots taken
// at creation; replaying them later against current lot costs may differ.
type Sale struct {
	ID id.ID `db:"id" json:"id"`

	// SKU identifies the product sold; sales address stock by SKU, not by
	// product name.
	SKU string `db:"sku" json:"sku"`

	ProductName string `db:"product_name" json:"productName"`

	QuantitySold int64 `db:"quantity_sold" json:"quantitySold"`

	// UnitPrice is the unit cost of the first lot the sale debited.
	UnitPrice types.Money `db:"unit_price" json:"unitPrice"`

	// TotalAmount is QuantitySold * UnitPrice at record time.
	TotalAmount types.Money `db:"total_amount" json:"totalAmount"`

	OrderDate time.Time `db:"order_date" json:"orderDate"`

	// ReceiptDate is when the buyer receives the goods, if known.
	ReceiptDate *time.Time `db:"receipt_date" json:"receiptDate,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// CreateInput carries the caller-supplied fields for recording a sale.
type CreateInput struct {
	SKU          string     `json:"sku"`
	QuantitySold int64      `json:"quantitySold"`
	ReceiptDate  *time.Time `json:"receiptDate,omitempty"`
}

// Validate checks the input invariants.
func (in CreateInput) Validate(ctx context.Context) error {
	if in.SKU == "" {
		return apperror.NewValidation("sku is required").WithDetail("field", "sku")
	}
	if in.QuantitySold <= 0 {
		return apperror.NewValidation("quantity sold must be positive").
			WithDetail("field", "quantitySold")
	}
	return nil
}

// UpdateInput carries the caller-editable fields of an existing sale.
// The SKU is fixed: a sale cannot be moved to another product.
type UpdateInput struct {
	QuantitySold int64      `json:"quantitySold"`
	ReceiptDate  *time.Time `json:"receiptDate,omitempty"`
}

// Validate checks the input invariants.
func (in UpdateInput) Validate(ctx context.Context) error {
	if in.QuantitySold <= 0 {
		return apperror.NewValidation("quantity sold must be positive").
			WithDetail("field", "quantitySold")
	}
	return nil
}

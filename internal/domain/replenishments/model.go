// Package replenishments provides the replenishment ledger: internal stock
// withdrawals to stores that debit the inventory ledger without a sale.
package replenishments

import (
	"context"
	"strings"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
)

// Replenishment is one recorded withdrawal, addressed by product name and
// carrying its own external 6-digit reference.
type Replenishment struct {
	ID id.ID `db:"id" json:"id"`

	// ReplenishmentRef is the external 6-digit code, unique per record.
	ReplenishmentRef int64 `db:"replenishment_ref" json:"replenishmentRef"`

	ProductName string `db:"product_name" json:"productName"`

	// SKU is copied from the first debited lot at record time.
	SKU string `db:"sku" json:"sku"`

	Quantity int64 `db:"quantity" json:"quantity"`

	// DestinationStore is where the withdrawn units are headed.
	DestinationStore string `db:"destination_store" json:"destinationStore"`

	RequestDate time.Time `db:"request_date" json:"requestDate"`

	// DispatchDate is nil until the withdrawal physically leaves.
	DispatchDate *time.Time `db:"dispatch_date" json:"dispatchDate,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// CreateInput carries the caller-supplied fields for a new withdrawal.
type CreateInput struct {
	ProductName      string     `json:"productName"`
	Quantity         int64      `json:"quantity"`
	DestinationStore string     `json:"destinationStore"`
	DispatchDate     *time.Time `json:"dispatchDate,omitempty"`
}

// Validate checks the input invariants.
func (in CreateInput) Validate(ctx context.Context) error {
	return validateFields(in.ProductName, in.Quantity, in.DestinationStore)
}

// UpdateInput carries the caller-editable fields of an existing withdrawal.
// The product is fixed; moving units between products is two records.
type UpdateInput struct {
	Quantity         int64      `json:"quantity"`
	DestinationStore string     `json:"destinationStore"`
	DispatchDate     *time.Time `json:"dispatchDate,omitempty"`
}

// Validate checks the input invariants.
func (in UpdateInput) Validate(ctx context.Context) error {
	if in.Quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if strings.TrimSpace(in.DestinationStore) == "" {
		return apperror.NewValidation("destination store is required").
			WithDetail("field", "destinationStore")
	}
	return nil
}

func validateFields(productName string, quantity int64, destination string) error {
	if productName == "" {
		return apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}
	if quantity <= 0 {
		return apperror.NewValidation("quantity must be positive").
			WithDetail("field", "quantity")
	}
	if strings.TrimSpace(destination) == "" {
		return apperror.NewValidation("destination store is required").
			WithDetail("field", "destinationStore")
	}
	return nil
}

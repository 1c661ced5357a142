package dto

import (
	"time"

	"kardex/internal/domain/sales"
)

// CreateSaleRequest represents a request to record a sale.
type CreateSaleRequest struct {
	SKU          string     `json:"sku" binding:"required"`
	QuantitySold int64      `json:"quantitySold" binding:"required,gt=0"`
	ReceiptDate  *time.Time `json:"receiptDate,omitempty"`
}

// ToInput converts the request to service input.
func (r *CreateSaleRequest) ToInput() sales.CreateInput {
	return sales.CreateInput{
		SKU:          r.SKU,
		QuantitySold: r.QuantitySold,
		ReceiptDate:  r.ReceiptDate,
	}
}

// UpdateSaleRequest changes a sale's quantity.
type UpdateSaleRequest struct {
	QuantitySold int64      `json:"quantitySold" binding:"required,gt=0"`
	ReceiptDate  *time.Time `json:"receiptDate,omitempty"`
}

// ToInput converts the request to service input.
func (r *UpdateSaleRequest) ToInput() sales.UpdateInput {
	return sales.UpdateInput{
		QuantitySold: r.QuantitySold,
		ReceiptDate:  r.ReceiptDate,
	}
}

package dto

import (
	"kardex/internal/core/types"
)

// BindPurchaseRequest converts a purchase into a stock lot.
type BindPurchaseRequest struct {
	PurchaseRef int64       `json:"purchaseRef" binding:"required"`
	SalePrice   types.Money `json:"salePrice"`
}

// UpdateSalePriceRequest sets the list price for a product.
type UpdateSalePriceRequest struct {
	SalePrice types.Money `json:"salePrice"`
}

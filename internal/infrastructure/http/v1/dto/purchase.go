package dto

import (
	"time"

	"kardex/internal/core/types"
	"kardex/internal/domain/purchases"
)

// CreatePurchaseRequest represents a request to record a purchase.
type CreatePurchaseRequest struct {
	Supplier             string      `json:"supplier" binding:"required"`
	ProductName          string      `json:"productName" binding:"required"`
	OrderedQuantity      int64       `json:"orderedQuantity" binding:"required,gt=0"`
	UnitCost             types.Money `json:"unitCost"`
	ExpectedDeliveryDate time.Time   `json:"expectedDeliveryDate" binding:"required"`
}

// ToInput converts the request to service input.
func (r *CreatePurchaseRequest) ToInput() purchases.CreateInput {
	return purchases.CreateInput{
		Supplier:             r.Supplier,
		ProductName:          r.ProductName,
		OrderedQuantity:      r.OrderedQuantity,
		UnitCost:             r.UnitCost,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
	}
}

// UpdatePurchaseRequest replaces all editable purchase fields.
type UpdatePurchaseRequest struct {
	Supplier             string      `json:"supplier" binding:"required"`
	ProductName          string      `json:"productName" binding:"required"`
	OrderedQuantity      int64       `json:"orderedQuantity" binding:"required,gt=0"`
	UnitCost             types.Money `json:"unitCost"`
	ExpectedDeliveryDate time.Time   `json:"expectedDeliveryDate" binding:"required"`
}

// ToInput converts the request to service input.
func (r *UpdatePurchaseRequest) ToInput() purchases.UpdateInput {
	return purchases.UpdateInput{
		Supplier:             r.Supplier,
		ProductName:          r.ProductName,
		OrderedQuantity:      r.OrderedQuantity,
		UnitCost:             r.UnitCost,
		ExpectedDeliveryDate: r.ExpectedDeliveryDate,
	}
}

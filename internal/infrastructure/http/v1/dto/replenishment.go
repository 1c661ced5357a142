package dto

import (
	"time"

	"kardex/internal/domain/replenishments"
)

// CreateReplenishmentRequest represents a request to record a withdrawal.
type CreateReplenishmentRequest struct {
	ProductName      string     `json:"productName" binding:"required"`
	Quantity         int64      `json:"quantity" binding:"required,gt=0"`
	DestinationStore string     `json:"destinationStore" binding:"required"`
	DispatchDate     *time.Time `json:"dispatchDate,omitempty"`
}

// ToInput converts the request to service input.
func (r *CreateReplenishmentRequest) ToInput() replenishments.CreateInput {
	return replenishments.CreateInput{
		ProductName:      r.ProductName,
		Quantity:         r.Quantity,
		DestinationStore: r.DestinationStore,
		DispatchDate:     r.DispatchDate,
	}
}

// UpdateReplenishmentRequest changes a withdrawal's quantity or destination.
type UpdateReplenishmentRequest struct {
	Quantity         int64      `json:"quantity" binding:"required,gt=0"`
	DestinationStore string     `json:"destinationStore" binding:"required"`
	DispatchDate     *time.Time `json:"dispatchDate,omitempty"`
}

// ToInput converts the request to service input.
func (r *UpdateReplenishmentRequest) ToInput() replenishments.UpdateInput {
	return replenishments.UpdateInput{
		Quantity:         r.Quantity,
		DestinationStore: r.DestinationStore,
		DispatchDate:     r.DispatchDate,
	}
}

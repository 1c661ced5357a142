// Package inventory provides the inventory ledger: on-hand stock lots
// created by binding purchases, debited by sales and replenishments.
package inventory

import (
	"time"

	"kardex/internal/core/id"
	"kardex/internal/core/types"
)

// LotStatus is the receiving state of a lot.
type LotStatus string

const (
	StatusPending  LotStatus = "pending"
	StatusReceived LotStatus = "received"
)

// Lot is an on-hand stock lot. Exactly one lot exists per purchase_ref;
// on_hand_quantity never goes below zero.
type Lot struct {
	ID id.ID `db:"id" json:"id"`

	// PurchaseRef binds the lot to its purchase (unique: at most one lot
	// per purchase, ever).
	PurchaseRef int64 `db:"purchase_ref" json:"purchaseRef"`

	ProductName string `db:"product_name" json:"productName"`

	// SKU is the product's stable code, shared by all lots of the product.
	SKU string `db:"sku" json:"sku"`

	// UnitCost is a snapshot of the purchase's unit cost at bind time.
	// Later purchase edits do not flow into it.
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	// SalePrice is the product-level list price, kept per lot row.
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// OnHandQuantity is whole units currently in stock for this lot.
	OnHandQuantity int64 `db:"on_hand_quantity" json:"onHandQuantity"`

	Status LotStatus `db:"status" json:"status"`

	// ReceivedDate is nil until the lot reaches StatusReceived.
	ReceivedDate *time.Time `db:"received_date" json:"receivedDate,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`
}

// ProductStock is one row of the per-product live aggregation: the read
// model consumed by the sales/replenishment ledgers and by callers.
type ProductStock struct {
	ProductName string `db:"product_name" json:"productName"`
	SKU         string `db:"sku" json:"sku"`

	// UnitCost is the quantity-weighted average cost across lots
	// (plain average when nothing is on hand).
	UnitCost types.Money `db:"unit_cost" json:"unitCost"`

	// SalePrice is the max over the product's lots.
	SalePrice types.Money `db:"sale_price" json:"salePrice"`

	// OnHandQuantity is the sum across the product's lots.
	OnHandQuantity int64 `db:"on_hand_quantity" json:"onHandQuantity"`

	// LastReceivedDate is the most recent received_date across lots.
	LastReceivedDate *time.Time `db:"last_received_date" json:"lastReceivedDate,omitempty"`
}

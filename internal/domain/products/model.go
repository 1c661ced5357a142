// Package products provides the product→SKU registry.
//
// A product keeps one SKU for its entire life, across every inventory lot
// that is ever created for it. The registry makes that invariant explicit
// instead of re-deriving the SKU by scanning existing lots.
package products

import (
	"time"
)

// ProductSKU is a registry entry binding a product name to its stable SKU.
type ProductSKU struct {
	ProductName string    `db:"product_name" json:"productName"`
	SKU         string    `db:"sku" json:"sku"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

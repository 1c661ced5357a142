// Package reports provides the read-only reconciliation layer over the
// inventory ledger: per-product stock summaries and availability lookups.
// It holds no state of its own; every call recomputes from lot rows.
package reports

import (
	"context"

	"kardex/internal/core/apperror"
	"kardex/internal/domain/inventory"
)

// Reader computes per-product aggregations straight from lot rows.
type Reader interface {
	// StockSummary returns one row per product with SKU, weighted average
	// unit cost, max sale price, total on-hand and last received date.
	StockSummary(ctx context.Context) ([]inventory.ProductStock, error)

	// ProductStock returns the aggregation row for a single product.
	// Returns apperror CodeNotFound when the product has no lots.
	ProductStock(ctx context.Context, productName string) (*inventory.ProductStock, error)
}

// Service provides reconciliation queries.
type Service struct {
	reader Reader
}

// NewService creates a new reports service.
func NewService(reader Reader) *Service {
	return &Service{reader: reader}
}

// StockSummary returns the live per-product aggregation for all products.
func (s *Service) StockSummary(ctx context.Context) ([]inventory.ProductStock, error) {
	return s.reader.StockSummary(ctx)
}

// ProductAvailability returns one product's aggregation row.
func (s *Service) ProductAvailability(ctx context.Context, productName string) (*inventory.ProductStock, error) {
	if productName == "" {
		return nil, apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}
	return s.reader.ProductStock(ctx, productName)
}

// AvailableProducts returns only the products with stock on hand. Used by
// the sale entry form: products drained to zero drop off the list.
func (s *Service) AvailableProducts(ctx context.Context) ([]inventory.ProductStock, error) {
	all, err := s.reader.StockSummary(ctx)
	if err != nil {
		return nil, err
	}

	available := make([]inventory.ProductStock, 0, len(all))
	for _, row := range all {
		if row.OnHandQuantity > 0 {
			available = append(available, row)
		}
	}
	return available, nil
}

package memory

import (
	"context"

	"kardex/internal/core/apperror"
	"kardex/internal/domain/inventory"
	"kardex/internal/domain/reports"
)

// ReportReader returns the reports.Reader view of the store.
func (s *Store) ReportReader() reports.Reader { return (*reportReader)(s) }

type reportReader Store

func (r *reportReader) store() *Store { return (*Store)(r) }

func (r *reportReader) StockSummary(ctx context.Context) ([]inventory.ProductStock, error) {
	s := r.store()
	defer s.enter(ctx)()
	return aggregate(s.state.lots), nil
}

func (r *reportReader) ProductStock(ctx context.Context, productName string) (*inventory.ProductStock, error) {
	s := r.store()
	defer s.enter(ctx)()

	var lots []inventory.Lot
	for _, lot := range s.state.lots {
		if lot.ProductName == productName {
			lots = append(lots, lot)
		}
	}
	if len(lots) == 0 {
		return nil, apperror.NewNotFound("inventory", productName)
	}
	row := aggregateProduct(productName, lots)
	return &row, nil
}

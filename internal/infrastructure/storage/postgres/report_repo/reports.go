// Package report_repo provides the PostgreSQL implementation of the
// reconciliation read layer.
package report_repo

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"kardex/internal/core/apperror"
	"kardex/internal/domain/inventory"
	"kardex/internal/domain/reports"
	"kardex/internal/infrastructure/storage/postgres"
)

const summarySQL = `
	SELECT product_name,
	       MAX(sku) AS sku,
	       CASE WHEN SUM(on_hand_quantity) > 0
	            THEN SUM(unit_cost * on_hand_quantity) / SUM(on_hand_quantity)
	            ELSE AVG(unit_cost)
	       END AS unit_cost,
	       MAX(sale_price) AS sale_price,
	       SUM(on_hand_quantity) AS on_hand_quantity,
	       MAX(received_date) AS last_received_date
	FROM inventory_lots
`

// ReportRepo implements reports.Reader against the lot table.
type ReportRepo struct {
	txm *postgres.TxManager
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{txm: txm}
}

func (r *ReportRepo) StockSummary(ctx context.Context) ([]inventory.ProductStock, error) {
	sql := summarySQL + `
	GROUP BY product_name
	ORDER BY product_name`

	var out []inventory.ProductStock
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql); err != nil {
		return nil, postgres.MapError(err, "stock summary")
	}
	return out, nil
}

func (r *ReportRepo) ProductStock(ctx context.Context, productName string) (*inventory.ProductStock, error) {
	sql := summarySQL + `
	WHERE product_name = $1
	GROUP BY product_name`

	var row inventory.ProductStock
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, sql, productName); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("inventory", productName)
		}
		return nil, postgres.MapError(err, "product stock")
	}
	return &row, nil
}

// Ensure interface compliance.
var _ reports.Reader = (*ReportRepo)(nil)

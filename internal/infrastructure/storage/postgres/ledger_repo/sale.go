package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/domain/sales"
	"kardex/internal/infrastructure/storage/postgres"
)

const salesTable = "sales"

var saleColumns = []string{
	"id", "sku", "product_name", "quantity_sold",
	"unit_price", "total_amount", "order_date", "receipt_date",
	"created_at", "updated_at", "version",
}

// SaleRepo implements sales.Repository.
type SaleRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewSaleRepo creates a new sale repository.
func NewSaleRepo(txm *postgres.TxManager) *SaleRepo {
	return &SaleRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *SaleRepo) Create(ctx context.Context, sale *sales.Sale) error {
	q := r.builder.Insert(salesTable).
		Columns(saleColumns...).
		Values(
			sale.ID, sale.SKU, sale.ProductName, sale.QuantitySold,
			sale.UnitPrice, sale.TotalAmount, sale.OrderDate, sale.ReceiptDate,
			sale.CreatedAt, sale.UpdatedAt, sale.Version,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.MapError(err, "insert sale")
}

func (r *SaleRepo) GetByID(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	q := r.builder.Select(saleColumns...).
		From(salesTable).
		Where(squirrel.Eq{"id": saleID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var sale sales.Sale
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &sale, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("sale", saleID)
		}
		return nil, postgres.MapError(err, "get sale")
	}
	return &sale, nil
}

func (r *SaleRepo) Update(ctx context.Context, sale *sales.Sale) error {
	q := r.builder.Update(salesTable).
		Set("quantity_sold", sale.QuantitySold).
		Set("total_amount", sale.TotalAmount).
		Set("receipt_date", sale.ReceiptDate).
		Set("updated_at", sale.UpdatedAt).
		Set("version", sale.Version).
		Where(squirrel.Eq{"id": sale.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "update sale")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", sale.ID)
	}
	return nil
}

func (r *SaleRepo) Delete(ctx context.Context, saleID id.ID) error {
	q := r.builder.Delete(salesTable).Where(squirrel.Eq{"id": saleID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "delete sale")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("sale", saleID)
	}
	return nil
}

func (r *SaleRepo) List(ctx context.Context) ([]sales.Sale, error) {
	q := r.builder.Select(saleColumns...).
		From(salesTable).
		OrderBy("order_date DESC", "created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []sales.Sale
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "select sales")
	}
	return out, nil
}

// Ensure interface compliance.
var _ sales.Repository = (*SaleRepo)(nil)

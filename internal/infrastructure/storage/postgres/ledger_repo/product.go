package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kardex/internal/core/apperror"
	"kardex/internal/domain/products"
	"kardex/internal/infrastructure/storage/postgres"
)

const productSKUsTable = "product_skus"

// ProductRepo implements products.Repository.
type ProductRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewProductRepo creates a new product registry repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ProductRepo) Create(ctx context.Context, entry *products.ProductSKU) error {
	q := r.builder.Insert(productSKUsTable).
		Columns("product_name", "sku", "created_at").
		Values(entry.ProductName, entry.SKU, entry.CreatedAt)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.MapError(err, "insert product sku")
}

func (r *ProductRepo) GetByProduct(ctx context.Context, productName string) (*products.ProductSKU, error) {
	q := r.builder.Select("product_name", "sku", "created_at").
		From(productSKUsTable).
		Where(squirrel.Eq{"product_name": productName}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var entry products.ProductSKU
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &entry, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("product", productName)
		}
		return nil, postgres.MapError(err, "get product sku")
	}
	return &entry, nil
}

func (r *ProductRepo) SKUExists(ctx context.Context, sku string) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM product_skus WHERE sku = $1)`

	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, sku).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "check sku")
	}
	return exists, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]products.ProductSKU, error) {
	q := r.builder.Select("product_name", "sku", "created_at").
		From(productSKUsTable).
		OrderBy("product_name")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []products.ProductSKU
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "select product skus")
	}
	return out, nil
}

// Ensure interface compliance.
var _ products.Repository = (*ProductRepo)(nil)

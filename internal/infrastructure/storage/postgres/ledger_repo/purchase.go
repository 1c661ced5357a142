// Package ledger_repo provides PostgreSQL implementations of the ledger
// repositories.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/domain/purchases"
	"kardex/internal/infrastructure/storage/postgres"
)

const purchasesTable = "purchases"

var purchaseColumns = []string{
	"id", "purchase_ref", "supplier", "product_name",
	"ordered_quantity", "unit_cost", "order_date", "expected_delivery_date",
	"sku", "created_at", "updated_at", "version",
}

// PurchaseRepo implements purchases.Repository.
type PurchaseRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewPurchaseRepo creates a new purchase repository.
func NewPurchaseRepo(txm *postgres.TxManager) *PurchaseRepo {
	return &PurchaseRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *PurchaseRepo) Create(ctx context.Context, p *purchases.Purchase) error {
	q := r.builder.Insert(purchasesTable).
		Columns(purchaseColumns...).
		Values(
			p.ID, p.PurchaseRef, p.Supplier, p.ProductName,
			p.OrderedQuantity, p.UnitCost, p.OrderDate, p.ExpectedDeliveryDate,
			p.SKU, p.CreatedAt, p.UpdatedAt, p.Version,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.MapError(err, "insert purchase")
}

func (r *PurchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchases.Purchase, error) {
	return r.getOne(ctx, squirrel.Eq{"id": purchaseID}, purchaseID)
}

func (r *PurchaseRepo) GetByRef(ctx context.Context, purchaseRef int64) (*purchases.Purchase, error) {
	return r.getOne(ctx, squirrel.Eq{"purchase_ref": purchaseRef}, purchaseRef)
}

func (r *PurchaseRepo) getOne(ctx context.Context, where squirrel.Eq, key any) (*purchases.Purchase, error) {
	q := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		Where(where).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p purchases.Purchase
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("purchase", key)
		}
		return nil, postgres.MapError(err, "get purchase")
	}
	return &p, nil
}

func (r *PurchaseRepo) Update(ctx context.Context, p *purchases.Purchase) error {
	q := r.builder.Update(purchasesTable).
		Set("supplier", p.Supplier).
		Set("product_name", p.ProductName).
		Set("ordered_quantity", p.OrderedQuantity).
		Set("unit_cost", p.UnitCost).
		Set("expected_delivery_date", p.ExpectedDeliveryDate).
		Set("sku", p.SKU).
		Set("updated_at", p.UpdatedAt).
		Set("version", p.Version).
		Where(squirrel.Eq{"id": p.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "update purchase")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase", p.ID)
	}
	return nil
}

func (r *PurchaseRepo) Delete(ctx context.Context, purchaseID id.ID) error {
	q := r.builder.Delete(purchasesTable).Where(squirrel.Eq{"id": purchaseID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "delete purchase")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("purchase", purchaseID)
	}
	return nil
}

func (r *PurchaseRepo) List(ctx context.Context) ([]purchases.Purchase, error) {
	q := r.builder.Select(purchaseColumns...).
		From(purchasesTable).
		OrderBy("created_at", "purchase_ref")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []purchases.Purchase
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "select purchases")
	}
	return out, nil
}

func (r *PurchaseRepo) ExistsByRef(ctx context.Context, purchaseRef int64) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM purchases WHERE purchase_ref = $1)`

	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, purchaseRef).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "check purchase ref")
	}
	return exists, nil
}

// ListUnboundRefs anti-joins purchases against inventory lots.
func (r *PurchaseRepo) ListUnboundRefs(ctx context.Context) ([]purchases.UnboundPurchase, error) {
	sql := `
		SELECT p.purchase_ref, p.product_name
		FROM purchases p
		LEFT JOIN inventory_lots l ON l.purchase_ref = p.purchase_ref
		WHERE l.id IS NULL
		ORDER BY p.purchase_ref
	`

	var out []purchases.UnboundPurchase
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql); err != nil {
		return nil, postgres.MapError(err, "select unbound purchases")
	}
	return out, nil
}

// Ensure interface compliance.
var _ purchases.Repository = (*PurchaseRepo)(nil)

package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/types"
	"kardex/internal/domain/inventory"
	"kardex/internal/infrastructure/storage/postgres"
)

const lotsTable = "inventory_lots"

var lotColumns = []string{
	"id", "purchase_ref", "product_name", "sku",
	"unit_cost", "sale_price", "on_hand_quantity", "status",
	"received_date", "created_at", "updated_at", "version",
}

// aggregateSQL folds lots into per-product rows. The weighted average
// degrades to a plain average when the product has nothing on hand.
const aggregateSQL = `
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

// LotRepo implements inventory.Repository.
type LotRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewLotRepo creates a new inventory lot repository.
func NewLotRepo(txm *postgres.TxManager) *LotRepo {
	return &LotRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *LotRepo) Create(ctx context.Context, lot *inventory.Lot) error {
	q := r.builder.Insert(lotsTable).
		Columns(lotColumns...).
		Values(
			lot.ID, lot.PurchaseRef, lot.ProductName, lot.SKU,
			lot.UnitCost, lot.SalePrice, lot.OnHandQuantity, lot.Status,
			lot.ReceivedDate, lot.CreatedAt, lot.UpdatedAt, lot.Version,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.MapError(err, "insert lot")
}

func (r *LotRepo) GetByID(ctx context.Context, lotID id.ID) (*inventory.Lot, error) {
	q := r.builder.Select(lotColumns...).
		From(lotsTable).
		Where(squirrel.Eq{"id": lotID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lot inventory.Lot
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &lot, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("lot", lotID)
		}
		return nil, postgres.MapError(err, "get lot")
	}
	return &lot, nil
}

func (r *LotRepo) ExistsByPurchaseRef(ctx context.Context, purchaseRef int64) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM inventory_lots WHERE purchase_ref = $1)`

	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, purchaseRef).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "check lot")
	}
	return exists, nil
}

func (r *LotRepo) List(ctx context.Context) ([]inventory.Lot, error) {
	q := r.builder.Select(lotColumns...).
		From(lotsTable).
		OrderBy("product_name", "created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []inventory.Lot
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "select lots")
	}
	return out, nil
}

func (r *LotRepo) ListByProduct(ctx context.Context, productName string) ([]inventory.Lot, error) {
	q := r.builder.Select(lotColumns...).
		From(lotsTable).
		Where(squirrel.Eq{"product_name": productName}).
		OrderBy("created_at")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []inventory.Lot
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "select lots by product")
	}
	return out, nil
}

// ListBySKUForUpdate locks the SKU's lots and returns them FIFO: oldest
// received first, unreceived last, creation order on ties.
func (r *LotRepo) ListBySKUForUpdate(ctx context.Context, sku string) ([]inventory.Lot, error) {
	sql := `
		SELECT id, purchase_ref, product_name, sku,
		       unit_cost, sale_price, on_hand_quantity, status,
		       received_date, created_at, updated_at, version
		FROM inventory_lots
		WHERE sku = $1
		ORDER BY received_date ASC NULLS LAST, created_at ASC
		FOR UPDATE
	`

	var out []inventory.Lot
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, sku); err != nil {
		return nil, postgres.MapError(err, "lock lots by sku")
	}
	return out, nil
}

// ListByProductForUpdate locks the product's lots, largest on hand first.
func (r *LotRepo) ListByProductForUpdate(ctx context.Context, productName string) ([]inventory.Lot, error) {
	sql := `
		SELECT id, purchase_ref, product_name, sku,
		       unit_cost, sale_price, on_hand_quantity, status,
		       received_date, created_at, updated_at, version
		FROM inventory_lots
		WHERE product_name = $1
		ORDER BY on_hand_quantity DESC, created_at ASC
		FOR UPDATE
	`

	var out []inventory.Lot
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, productName); err != nil {
		return nil, postgres.MapError(err, "lock lots by product")
	}
	return out, nil
}

func (r *LotRepo) UpdateQuantity(ctx context.Context, lotID id.ID, quantity int64) error {
	q := r.builder.Update(lotsTable).
		Set("on_hand_quantity", quantity).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": lotID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "update lot quantity")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("lot", lotID)
	}
	return nil
}

func (r *LotRepo) UpdateSalePriceByProduct(ctx context.Context, productName string, price types.Money) (int64, error) {
	q := r.builder.Update(lotsTable).
		Set("sale_price", price).
		Set("updated_at", squirrel.Expr("NOW()")).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"product_name": productName})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "update sale price")
	}
	return tag.RowsAffected(), nil
}

func (r *LotRepo) DeleteByProduct(ctx context.Context, productName string) (int64, error) {
	q := r.builder.Delete(lotsTable).Where(squirrel.Eq{"product_name": productName})

	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return 0, postgres.MapError(err, "delete lots by product")
	}
	return tag.RowsAffected(), nil
}

func (r *LotRepo) DeleteByPurchaseRef(ctx context.Context, purchaseRef int64) error {
	q := r.builder.Delete(lotsTable).Where(squirrel.Eq{"purchase_ref": purchaseRef})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	// Zero rows is fine: the purchase may never have been bound.
	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.MapError(err, "delete lot by purchase ref")
}

func (r *LotRepo) AggregateByProduct(ctx context.Context) ([]inventory.ProductStock, error) {
	sql := aggregateSQL + `
	GROUP BY product_name
	ORDER BY product_name`

	var out []inventory.ProductStock
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql); err != nil {
		return nil, postgres.MapError(err, "aggregate stock")
	}
	return out, nil
}

// Ensure interface compliance.
var _ inventory.Repository = (*LotRepo)(nil)

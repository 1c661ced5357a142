package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/domain/replenishments"
	"kardex/internal/infrastructure/storage/postgres"
)

const replenishmentsTable = "replenishments"

var replenishmentColumns = []string{
	"id", "replenishment_ref", "product_name", "sku", "quantity",
	"destination_store", "request_date", "dispatch_date",
	"created_at", "updated_at", "version",
}

// ReplenishmentRepo implements replenishments.Repository.
type ReplenishmentRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReplenishmentRepo creates a new replenishment repository.
func NewReplenishmentRepo(txm *postgres.TxManager) *ReplenishmentRepo {
	return &ReplenishmentRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *ReplenishmentRepo) Create(ctx context.Context, rec *replenishments.Replenishment) error {
	q := r.builder.Insert(replenishmentsTable).
		Columns(replenishmentColumns...).
		Values(
			rec.ID, rec.ReplenishmentRef, rec.ProductName, rec.SKU, rec.Quantity,
			rec.DestinationStore, rec.RequestDate, rec.DispatchDate,
			rec.CreatedAt, rec.UpdatedAt, rec.Version,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	return postgres.MapError(err, "insert replenishment")
}

func (r *ReplenishmentRepo) GetByID(ctx context.Context, replenishmentID id.ID) (*replenishments.Replenishment, error) {
	q := r.builder.Select(replenishmentColumns...).
		From(replenishmentsTable).
		Where(squirrel.Eq{"id": replenishmentID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rec replenishments.Replenishment
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rec, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("replenishment", replenishmentID)
		}
		return nil, postgres.MapError(err, "get replenishment")
	}
	return &rec, nil
}

func (r *ReplenishmentRepo) Update(ctx context.Context, rec *replenishments.Replenishment) error {
	q := r.builder.Update(replenishmentsTable).
		Set("quantity", rec.Quantity).
		Set("destination_store", rec.DestinationStore).
		Set("dispatch_date", rec.DispatchDate).
		Set("updated_at", rec.UpdatedAt).
		Set("version", rec.Version).
		Where(squirrel.Eq{"id": rec.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "update replenishment")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("replenishment", rec.ID)
	}
	return nil
}

func (r *ReplenishmentRepo) Delete(ctx context.Context, replenishmentID id.ID) error {
	q := r.builder.Delete(replenishmentsTable).Where(squirrel.Eq{"id": replenishmentID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "delete replenishment")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("replenishment", replenishmentID)
	}
	return nil
}

func (r *ReplenishmentRepo) List(ctx context.Context) ([]replenishments.Replenishment, error) {
	q := r.builder.Select(replenishmentColumns...).
		From(replenishmentsTable).
		OrderBy("request_date DESC", "created_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var out []replenishments.Replenishment
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &out, sql, args...); err != nil {
		return nil, postgres.MapError(err, "select replenishments")
	}
	return out, nil
}

func (r *ReplenishmentRepo) ExistsByRef(ctx context.Context, replenishmentRef int64) (bool, error) {
	sql := `SELECT EXISTS (SELECT 1 FROM replenishments WHERE replenishment_ref = $1)`

	var exists bool
	err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, replenishmentRef).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "check replenishment ref")
	}
	return exists, nil
}

// Ensure interface compliance.
var _ replenishments.Repository = (*ReplenishmentRepo)(nil)

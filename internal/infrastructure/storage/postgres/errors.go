package postgres

import (
	"context"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"kardex/internal/core/apperror"
)

// PostgreSQL error codes the ledger cares about.
const (
	pgUniqueViolation      = "23505"
	pgForeignKeyViolation  = "23503"
	pgCheckViolation       = "23514"
	pgLockNotAvailable     = "55P03"
	pgQueryCanceled        = "57014"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

// MapError converts a driver error into the service error taxonomy.
//
// Lock waits, statement timeouts, serialization failures and deadlocks map
// to CodeRetryable: the transaction rolled back cleanly and the caller may
// retry the whole operation. Check violations on on_hand_quantity map to
// CodeInsufficientStock as the last line of defense behind the service
// checks.
func MapError(err error, op string) error {
	if err == nil {
		return nil
	}

	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return apperror.NewRetryable("operation timed out").WithCause(err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgLockNotAvailable, pgQueryCanceled, pgSerializationFailure, pgDeadlockDetected:
			return apperror.NewRetryable("storage contention, retry the operation").
				WithDetail("pg_code", pgErr.Code).
				WithCause(err)
		case pgUniqueViolation:
			return apperror.NewDuplicate("record", pgErr.ConstraintName, "").
				WithCause(err)
		case pgForeignKeyViolation:
			return apperror.NewConflict("operation violates a reference constraint").
				WithDetail("constraint", pgErr.ConstraintName).
				WithCause(err)
		case pgCheckViolation:
			return (&apperror.AppError{
				Code:       apperror.CodeInsufficientStock,
				Message:    "stock constraint violated",
				HTTPStatus: http.StatusUnprocessableEntity,
			}).WithDetail("constraint", pgErr.ConstraintName).WithCause(err)
		}
	}

	return (&apperror.AppError{
		Code:       apperror.CodeDatabase,
		Message:    op + " failed",
		HTTPStatus: http.StatusInternalServerError,
	}).WithCause(err)
}

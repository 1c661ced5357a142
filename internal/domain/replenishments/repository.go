package replenishments

import (
	"context"

	"kardex/internal/core/id"
)

// Repository defines storage operations for replenishment records.
type Repository interface {
	Create(ctx context.Context, r *Replenishment) error

	// GetByID returns a replenishment by internal id.
	// Returns apperror CodeNotFound if absent.
	GetByID(ctx context.Context, replenishmentID id.ID) (*Replenishment, error)

	Update(ctx context.Context, r *Replenishment) error
	Delete(ctx context.Context, replenishmentID id.ID) error
	List(ctx context.Context) ([]Replenishment, error)

	// ExistsByRef reports whether the 6-digit code is already taken.
	ExistsByRef(ctx context.Context, replenishmentRef int64) (bool, error)
}

package replenishments

import (
	"context"
	"fmt"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/refgen"
	"kardex/internal/core/tx"
	"kardex/internal/domain/inventory"
	"kardex/pkg/logger"
)

// LotLedger is the subset of the inventory ledger withdrawals debit and
// credit against. Unlike sales, withdrawals address lots by product name
// and drain the largest lot first.
type LotLedger interface {
	// ListByProductForUpdate returns the product's lots largest-first,
	// row-locked.
	ListByProductForUpdate(ctx context.Context, productName string) ([]inventory.Lot, error)

	// UpdateQuantity sets a lot's on-hand quantity.
	UpdateQuantity(ctx context.Context, lotID id.ID, quantity int64) error
}

// Service provides business operations for the replenishment ledger.
type Service struct {
	repo      Repository
	lots      LotLedger
	refs      refgen.Generator
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new replenishment ledger service.
func NewService(repo Repository, lots LotLedger, refs refgen.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		lots:      lots,
		refs:      refs,
		txManager: txManager,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create records a withdrawal and debits the product's lots largest-first,
// spilling into smaller lots when the largest cannot cover the quantity
// alone. Check and debit share one set of row locks.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Replenishment, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var rec *Replenishment
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lots, err := s.lots.ListByProductForUpdate(ctx, in.ProductName)
		if err != nil {
			return fmt.Errorf("lock lots: %w", err)
		}
		if len(lots) == 0 {
			return apperror.NewNotFound("inventory", in.ProductName)
		}

		available := inventory.TotalOnHand(lots)
		if in.Quantity > available {
			return apperror.NewInsufficientStock(in.ProductName, in.Quantity, available)
		}

		if err := s.applyChanges(ctx, inventory.PlanDebit(lots, in.Quantity)); err != nil {
			return err
		}

		ref, err := s.refs.Next(ctx, s.repo.ExistsByRef)
		if err != nil {
			return fmt.Errorf("generate replenishment ref: %w", err)
		}

		now := s.now().UTC()
		rec = &Replenishment{
			ID:               id.New(),
			ReplenishmentRef: ref,
			ProductName:      in.ProductName,
			SKU:              lots[0].SKU,
			Quantity:         in.Quantity,
			DestinationStore: in.DestinationStore,
			RequestDate:      now,
			DispatchDate:     in.DispatchDate,
			CreatedAt:        now,
			UpdatedAt:        now,
			Version:          1,
		}
		return s.repo.Create(ctx, rec)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "replenishment recorded",
		"id", rec.ID,
		"replenishment_ref", rec.ReplenishmentRef,
		"product", rec.ProductName,
		"quantity", rec.Quantity,
	)
	return rec, nil
}

// Update changes a withdrawal's quantity and applies only the delta to
// stock: a raise debits the extra units largest-first, a cut credits them
// back to the largest lot.
func (s *Service) Update(ctx context.Context, replenishmentID id.ID, in UpdateInput) (*Replenishment, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var updated *Replenishment
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.repo.GetByID(ctx, replenishmentID)
		if err != nil {
			return err
		}

		delta := in.Quantity - rec.Quantity
		if delta != 0 {
			if err := s.adjustStock(ctx, rec.ProductName, delta); err != nil {
				return err
			}
		}

		rec.Quantity = in.Quantity
		rec.DestinationStore = in.DestinationStore
		rec.DispatchDate = in.DispatchDate
		rec.UpdatedAt = s.now().UTC()
		rec.Version++

		if err := s.repo.Update(ctx, rec); err != nil {
			return err
		}
		updated = rec
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a withdrawal and credits its full quantity back to the
// product's largest lot. The credit is skipped when the product's lots are
// already gone.
func (s *Service) Delete(ctx context.Context, replenishmentID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		rec, err := s.repo.GetByID(ctx, replenishmentID)
		if err != nil {
			return err
		}

		lots, err := s.lots.ListByProductForUpdate(ctx, rec.ProductName)
		if err != nil {
			return fmt.Errorf("lock lots: %w", err)
		}
		if len(lots) > 0 {
			largest := lots[0]
			if err := s.lots.UpdateQuantity(ctx, largest.ID, largest.OnHandQuantity+rec.Quantity); err != nil {
				return fmt.Errorf("credit stock: %w", err)
			}
		}

		if err := s.repo.Delete(ctx, replenishmentID); err != nil {
			return err
		}

		logger.Info(ctx, "replenishment deleted",
			"id", replenishmentID,
			"replenishment_ref", rec.ReplenishmentRef,
			"credited", rec.Quantity,
		)
		return nil
	})
}

// GetByID returns a replenishment by internal id.
func (s *Service) GetByID(ctx context.Context, replenishmentID id.ID) (*Replenishment, error) {
	return s.repo.GetByID(ctx, replenishmentID)
}

// List returns all replenishments.
func (s *Service) List(ctx context.Context) ([]Replenishment, error) {
	return s.repo.List(ctx)
}

func (s *Service) adjustStock(ctx context.Context, productName string, delta int64) error {
	lots, err := s.lots.ListByProductForUpdate(ctx, productName)
	if err != nil {
		return fmt.Errorf("lock lots: %w", err)
	}

	if delta > 0 {
		available := inventory.TotalOnHand(lots)
		if delta > available {
			return apperror.NewInsufficientStock(productName, delta, available)
		}
		return s.applyChanges(ctx, inventory.PlanDebit(lots, delta))
	}

	if len(lots) == 0 {
		return nil
	}
	largest := lots[0]
	return s.lots.UpdateQuantity(ctx, largest.ID, largest.OnHandQuantity-delta)
}

func (s *Service) applyChanges(ctx context.Context, changes []inventory.QuantityChange) error {
	for _, c := range changes {
		if err := s.lots.UpdateQuantity(ctx, c.LotID, c.NewQuantity); err != nil {
			return fmt.Errorf("debit lot %s: %w", c.LotID, err)
		}
	}
	return nil
}

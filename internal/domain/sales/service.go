package sales

import (
	"context"
	"fmt"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/tx"
	"kardex/internal/core/types"
	"kardex/internal/domain/inventory"
	"kardex/pkg/logger"
)

// LotLedger is the subset of the inventory ledger the sales ledger debits
// and credits against.
type LotLedger interface {
	// ListBySKUForUpdate returns the SKU's lots FIFO-ordered, row-locked.
	ListBySKUForUpdate(ctx context.Context, sku string) ([]inventory.Lot, error)

	// UpdateQuantity sets a lot's on-hand quantity.
	UpdateQuantity(ctx context.Context, lotID id.ID, quantity int64) error
}

// Service provides business operations for the sales ledger.
type Service struct {
	repo      Repository
	lots      LotLedger
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new sales ledger service.
func NewService(repo Repository, lots LotLedger, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		lots:      lots,
		txManager: txManager,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Create records a sale and debits the product's lots FIFO by received
// date. The availability check and the debit run under the same row locks,
// so two concurrent sales cannot both pass the check and overdraw stock.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Sale, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var sale *Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		lots, err := s.lots.ListBySKUForUpdate(ctx, in.SKU)
		if err != nil {
			return fmt.Errorf("lock lots: %w", err)
		}
		if len(lots) == 0 {
			return apperror.NewNotFound("inventory", in.SKU)
		}

		available := inventory.TotalOnHand(lots)
		if in.QuantitySold > available {
			return apperror.NewInsufficientStock(lots[0].ProductName, in.QuantitySold, available)
		}

		if err := s.applyChanges(ctx, inventory.PlanDebit(lots, in.QuantitySold)); err != nil {
			return err
		}

		unitPrice := lots[0].UnitCost
		now := s.now().UTC()
		sale = &Sale{
			ID:           id.New(),
			SKU:          in.SKU,
			ProductName:  lots[0].ProductName,
			QuantitySold: in.QuantitySold,
			UnitPrice:    unitPrice,
			TotalAmount:  unitPrice.Mul(types.MoneyFromInt(in.QuantitySold)),
			OrderDate:    now,
			ReceiptDate:  in.ReceiptDate,
			CreatedAt:    now,
			UpdatedAt:    now,
			Version:      1,
		}
		return s.repo.Create(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale recorded",
		"id", sale.ID,
		"sku", sale.SKU,
		"quantity", sale.QuantitySold,
		"total", sale.TotalAmount,
	)
	return sale, nil
}

// Update changes a sale's quantity and applies only the delta to stock: a
// raise debits the extra units FIFO, a cut credits them back. The price
// snapshot is kept, so the total is recomputed from the original unit price.
func (s *Service) Update(ctx context.Context, saleID id.ID, in UpdateInput) (*Sale, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var updated *Sale
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.repo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}

		delta := in.QuantitySold - sale.QuantitySold
		if delta != 0 {
			if err := s.adjustStock(ctx, sale, delta); err != nil {
				return err
			}
		}

		sale.QuantitySold = in.QuantitySold
		sale.TotalAmount = sale.UnitPrice.Mul(types.MoneyFromInt(in.QuantitySold))
		sale.ReceiptDate = in.ReceiptDate
		sale.UpdatedAt = s.now().UTC()
		sale.Version++

		if err := s.repo.Update(ctx, sale); err != nil {
			return err
		}
		updated = sale
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a sale and credits its full quantity back to stock. If the
// product's lots were deleted in the meantime the credit is skipped; the
// units have nowhere to go.
func (s *Service) Delete(ctx context.Context, saleID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		sale, err := s.repo.GetByID(ctx, saleID)
		if err != nil {
			return err
		}

		lots, err := s.lots.ListBySKUForUpdate(ctx, sale.SKU)
		if err != nil {
			return fmt.Errorf("lock lots: %w", err)
		}
		if len(lots) > 0 {
			first := lots[0]
			if err := s.lots.UpdateQuantity(ctx, first.ID, first.OnHandQuantity+sale.QuantitySold); err != nil {
				return fmt.Errorf("credit stock: %w", err)
			}
		}

		if err := s.repo.Delete(ctx, saleID); err != nil {
			return err
		}

		logger.Info(ctx, "sale deleted", "id", saleID, "sku", sale.SKU, "credited", sale.QuantitySold)
		return nil
	})
}

// GetByID returns a sale by internal id.
func (s *Service) GetByID(ctx context.Context, saleID id.ID) (*Sale, error) {
	return s.repo.GetByID(ctx, saleID)
}

// List returns all sales.
func (s *Service) List(ctx context.Context) ([]Sale, error) {
	return s.repo.List(ctx)
}

// adjustStock applies a quantity delta to the sale's product under row
// locks. Positive debits FIFO, negative credits the oldest lot.
func (s *Service) adjustStock(ctx context.Context, sale *Sale, delta int64) error {
	lots, err := s.lots.ListBySKUForUpdate(ctx, sale.SKU)
	if err != nil {
		return fmt.Errorf("lock lots: %w", err)
	}

	if delta > 0 {
		if len(lots) == 0 {
			return apperror.NewInsufficientStock(sale.ProductName, delta, 0)
		}
		available := inventory.TotalOnHand(lots)
		if delta > available {
			return apperror.NewInsufficientStock(sale.ProductName, delta, available)
		}
		return s.applyChanges(ctx, inventory.PlanDebit(lots, delta))
	}

	if len(lots) == 0 {
		return nil
	}
	first := lots[0]
	return s.lots.UpdateQuantity(ctx, first.ID, first.OnHandQuantity-delta)
}

func (s *Service) applyChanges(ctx context.Context, changes []inventory.QuantityChange) error {
	for _, c := range changes {
		if err := s.lots.UpdateQuantity(ctx, c.LotID, c.NewQuantity); err != nil {
			return fmt.Errorf("debit lot %s: %w", c.LotID, err)
		}
	}
	return nil
}

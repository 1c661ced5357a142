package inventory

import (
	"context"
	"fmt"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/tx"
	"kardex/internal/core/types"
	"kardex/internal/domain/purchases"
	"kardex/pkg/logger"
)

// PurchaseSource resolves purchases by their external reference.
type PurchaseSource interface {
	GetByRef(ctx context.Context, purchaseRef int64) (*purchases.Purchase, error)
}

// SKURegistry hands out the stable SKU for a product, creating one on
// first use.
type SKURegistry interface {
	EnsureSKU(ctx context.Context, productName string) (string, error)
}

// Service provides business operations for the inventory ledger.
type Service struct {
	repo      Repository
	purchases PurchaseSource
	skus      SKURegistry
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new inventory ledger service.
func NewService(repo Repository, purchaseSource PurchaseSource, skus SKURegistry, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		purchases: purchaseSource,
		skus:      skus,
		txManager: txManager,
		now:       time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// BindPurchase converts a purchase into an on-hand stock lot.
//
// This is the only write path that creates stock: the lot opens with the
// purchase's full ordered quantity and a snapshot of its unit cost. A
// purchase can be bound at most once.
func (s *Service) BindPurchase(ctx context.Context, purchaseRef int64, salePrice types.Money) (*Lot, error) {
	if !salePrice.IsPositive() {
		return nil, apperror.NewValidation("sale price must be positive").
			WithDetail("field", "salePrice")
	}

	var lot *Lot
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		bound, err := s.repo.ExistsByPurchaseRef(ctx, purchaseRef)
		if err != nil {
			return fmt.Errorf("check existing lot: %w", err)
		}
		if bound {
			return apperror.NewConflict("purchase is already bound to an inventory lot").
				WithDetail("purchaseRef", purchaseRef)
		}

		purchase, err := s.purchases.GetByRef(ctx, purchaseRef)
		if err != nil {
			return err
		}

		sku, err := s.skus.EnsureSKU(ctx, purchase.ProductName)
		if err != nil {
			return err
		}

		received := s.now().UTC()
		lot = &Lot{
			ID:             id.New(),
			PurchaseRef:    purchaseRef,
			ProductName:    purchase.ProductName,
			SKU:            sku,
			UnitCost:       purchase.UnitCost,
			SalePrice:      salePrice,
			OnHandQuantity: purchase.OrderedQuantity,
			Status:         StatusReceived,
			ReceivedDate:   &received,
			CreatedAt:      received,
			UpdatedAt:      received,
			Version:        1,
		}

		return s.repo.Create(ctx, lot)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase bound to lot",
		"lot_id", lot.ID,
		"purchase_ref", purchaseRef,
		"sku", lot.SKU,
		"on_hand", lot.OnHandQuantity,
	)
	return lot, nil
}

// UpdateSalePrice sets the sale price on all lots of a product. Price is a
// product-level concept even though cost stays lot-level.
func (s *Service) UpdateSalePrice(ctx context.Context, productName string, price types.Money) error {
	if !price.IsPositive() {
		return apperror.NewValidation("sale price must be positive").
			WithDetail("field", "salePrice")
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := s.repo.UpdateSalePriceByProduct(ctx, productName, price)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NewNotFound("inventory", productName)
		}
		return nil
	})
}

// DeleteByProduct removes all lots of a product. Purchases are untouched.
func (s *Service) DeleteByProduct(ctx context.Context, productName string) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		n, err := s.repo.DeleteByProduct(ctx, productName)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperror.NewNotFound("inventory", productName)
		}
		logger.Info(ctx, "inventory deleted for product", "product", productName, "lots", n)
		return nil
	})
}

// ListLots returns all lots.
func (s *Service) ListLots(ctx context.Context) ([]Lot, error) {
	return s.repo.List(ctx)
}

// AggregateByProduct returns the live per-product aggregation.
func (s *Service) AggregateByProduct(ctx context.Context) ([]ProductStock, error) {
	return s.repo.AggregateByProduct(ctx)
}

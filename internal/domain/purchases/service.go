package purchases

import (
	"context"
	"fmt"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/refgen"
	"kardex/internal/core/tx"
	"kardex/pkg/logger"
)

// LotStore is the subset of the inventory ledger the purchase ledger needs
// for the delete cascade.
type LotStore interface {
	// DeleteByPurchaseRef removes the lot bound to a purchase, if any.
	DeleteByPurchaseRef(ctx context.Context, purchaseRef int64) error
}

// SKULookup resolves a product's registered SKU, if one exists.
type SKULookup interface {
	Lookup(ctx context.Context, productName string) (string, error)
}

// Service provides business operations for the purchase ledger.
type Service struct {
	repo      Repository
	lots      LotStore
	skus      SKULookup
	refs      refgen.Generator
	txManager tx.Manager
	now       func() time.Time
}

// NewService creates a new purchase ledger service.
func NewService(repo Repository, lots LotStore, skus SKULookup, refs refgen.Generator, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		lots:      lots,
		skus:      skus,
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

// Create records a new purchase with a freshly generated purchase_ref.
// The generate+insert pair runs in one transaction so concurrent writers
// cannot race the same reference.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Purchase, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	p := &Purchase{
		ID:                   id.New(),
		Supplier:             in.Supplier,
		ProductName:          in.ProductName,
		OrderedQuantity:      in.OrderedQuantity,
		UnitCost:             in.UnitCost,
		OrderDate:            s.now().UTC(),
		ExpectedDeliveryDate: in.ExpectedDeliveryDate,
		CreatedAt:            s.now().UTC(),
		UpdatedAt:            s.now().UTC(),
		Version:              1,
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		ref, err := s.refs.Next(ctx, s.repo.ExistsByRef)
		if err != nil {
			return fmt.Errorf("generate purchase ref: %w", err)
		}
		p.PurchaseRef = ref

		// The SKU is assigned lazily: reuse the registered one if the
		// product is already known, leave empty otherwise.
		if sku, err := s.skus.Lookup(ctx, in.ProductName); err == nil {
			p.SKU = &sku
		} else if !apperror.IsNotFound(err) {
			return fmt.Errorf("lookup sku: %w", err)
		}

		return s.repo.Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "purchase created",
		"id", p.ID,
		"purchase_ref", p.PurchaseRef,
		"product", p.ProductName,
		"quantity", p.OrderedQuantity,
	)
	return p, nil
}

// Update replaces all caller-editable fields of a purchase.
// A lot already bound to this purchase keeps its snapshot untouched.
func (s *Service) Update(ctx context.Context, purchaseID id.ID, in UpdateInput) (*Purchase, error) {
	if err := in.Validate(ctx); err != nil {
		return nil, err
	}

	var updated *Purchase
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		p.Supplier = in.Supplier
		p.ProductName = in.ProductName
		p.OrderedQuantity = in.OrderedQuantity
		p.UnitCost = in.UnitCost
		p.ExpectedDeliveryDate = in.ExpectedDeliveryDate
		p.UpdatedAt = s.now().UTC()
		p.Version++

		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a purchase and cascades to its bound inventory lot.
// The cascade is explicit and ordered (lot first, then purchase) inside
// one transaction; the lot's on-hand history is lost with it.
func (s *Service) Delete(ctx context.Context, purchaseID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		p, err := s.repo.GetByID(ctx, purchaseID)
		if err != nil {
			return err
		}

		if err := s.lots.DeleteByPurchaseRef(ctx, p.PurchaseRef); err != nil {
			return fmt.Errorf("cascade lot delete: %w", err)
		}

		if err := s.repo.Delete(ctx, purchaseID); err != nil {
			return err
		}

		logger.Info(ctx, "purchase deleted", "id", purchaseID, "purchase_ref", p.PurchaseRef)
		return nil
	})
}

// GetByID returns a purchase by internal id.
func (s *Service) GetByID(ctx context.Context, purchaseID id.ID) (*Purchase, error) {
	return s.repo.GetByID(ctx, purchaseID)
}

// GetByRef returns a purchase by its external 6-digit code.
func (s *Service) GetByRef(ctx context.Context, purchaseRef int64) (*Purchase, error) {
	return s.repo.GetByRef(ctx, purchaseRef)
}

// List returns all purchases.
func (s *Service) List(ctx context.Context) ([]Purchase, error) {
	return s.repo.List(ctx)
}

// ListUnboundRefs returns purchase refs that have no inventory lot yet.
func (s *Service) ListUnboundRefs(ctx context.Context) ([]UnboundPurchase, error) {
	return s.repo.ListUnboundRefs(ctx)
}

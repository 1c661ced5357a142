package products

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"kardex/internal/core/apperror"
	"kardex/internal/core/refgen"
)

// Service provides business operations for the product→SKU registry.
type Service struct {
	repo Repository
	refs refgen.Generator
	now  func() time.Time
}

// NewService creates a new registry service.
func NewService(repo Repository, refs refgen.Generator) *Service {
	return &Service{
		repo: repo,
		refs: refs,
		now:  time.Now,
	}
}

// WithClock overrides the time source. Used by tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// EnsureSKU returns the stable SKU for a product, generating and persisting
// a fresh unique 6-digit one on first use. Must be called inside the
// caller's transaction so the generate+insert pair is atomic.
func (s *Service) EnsureSKU(ctx context.Context, productName string) (string, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return "", apperror.NewValidation("product name is required").
			WithDetail("field", "productName")
	}

	existing, err := s.repo.GetByProduct(ctx, productName)
	if err == nil {
		return existing.SKU, nil
	}
	if !apperror.IsNotFound(err) {
		return "", fmt.Errorf("lookup product sku: %w", err)
	}

	ref, err := s.refs.Next(ctx, func(ctx context.Context, candidate int64) (bool, error) {
		return s.repo.SKUExists(ctx, strconv.FormatInt(candidate, 10))
	})
	if err != nil {
		return "", fmt.Errorf("generate sku: %w", err)
	}

	entry := &ProductSKU{
		ProductName: productName,
		SKU:         strconv.FormatInt(ref, 10),
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return "", fmt.Errorf("create product sku: %w", err)
	}

	return entry.SKU, nil
}

// Lookup returns the SKU for a product, or CodeNotFound if none is assigned.
func (s *Service) Lookup(ctx context.Context, productName string) (string, error) {
	entry, err := s.repo.GetByProduct(ctx, productName)
	if err != nil {
		return "", err
	}
	return entry.SKU, nil
}

// List returns all known product→SKU bindings.
func (s *Service) List(ctx context.Context) ([]ProductSKU, error) {
	return s.repo.List(ctx)
}

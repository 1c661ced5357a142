package memory

import (
	"context"

	"kardex/internal/core/apperror"
	"kardex/internal/domain/products"
)

// ProductRepo returns the products.Repository view of the store.
func (s *Store) ProductRepo() products.Repository { return (*productRepo)(s) }

type productRepo Store

func (r *productRepo) store() *Store { return (*Store)(r) }

func (r *productRepo) Create(ctx context.Context, entry *products.ProductSKU) error {
	s := r.store()
	defer s.enter(ctx)()

	for _, existing := range s.state.products {
		if existing.ProductName == entry.ProductName {
			return apperror.NewDuplicate("product", "product_name", entry.ProductName)
		}
		if existing.SKU == entry.SKU {
			return apperror.NewDuplicate("product", "sku", entry.SKU)
		}
	}
	s.state.products = append(s.state.products, *entry)
	return nil
}

func (r *productRepo) GetByProduct(ctx context.Context, productName string) (*products.ProductSKU, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, entry := range s.state.products {
		if entry.ProductName == productName {
			out := entry
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("product", productName)
}

func (r *productRepo) SKUExists(ctx context.Context, sku string) (bool, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, entry := range s.state.products {
		if entry.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *productRepo) List(ctx context.Context) ([]products.ProductSKU, error) {
	s := r.store()
	defer s.enter(ctx)()

	out := make([]products.ProductSKU, len(s.state.products))
	copy(out, s.state.products)
	return out, nil
}

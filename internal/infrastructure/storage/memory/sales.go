package memory

import (
	"context"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/domain/sales"
)

// SaleRepo returns the sales.Repository view of the store.
func (s *Store) SaleRepo() sales.Repository { return (*saleRepo)(s) }

type saleRepo Store

func (r *saleRepo) store() *Store { return (*Store)(r) }

func (r *saleRepo) Create(ctx context.Context, sale *sales.Sale) error {
	s := r.store()
	defer s.enter(ctx)()

	s.state.sales = append(s.state.sales, *sale)
	return nil
}

func (r *saleRepo) GetByID(ctx context.Context, saleID id.ID) (*sales.Sale, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, sale := range s.state.sales {
		if sale.ID == saleID {
			out := sale
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("sale", saleID)
}

func (r *saleRepo) Update(ctx context.Context, sale *sales.Sale) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.sales {
		if s.state.sales[i].ID == sale.ID {
			s.state.sales[i] = *sale
			return nil
		}
	}
	return apperror.NewNotFound("sale", sale.ID)
}

func (r *saleRepo) Delete(ctx context.Context, saleID id.ID) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.sales {
		if s.state.sales[i].ID == saleID {
			s.state.sales = append(s.state.sales[:i], s.state.sales[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("sale", saleID)
}

func (r *saleRepo) List(ctx context.Context) ([]sales.Sale, error) {
	s := r.store()
	defer s.enter(ctx)()

	out := make([]sales.Sale, len(s.state.sales))
	copy(out, s.state.sales)
	return out, nil
}

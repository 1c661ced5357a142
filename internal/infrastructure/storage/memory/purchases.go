package memory

import (
	"context"
	"strconv"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/domain/purchases"
)

// PurchaseRepo returns the purchases.Repository view of the store.
func (s *Store) PurchaseRepo() purchases.Repository { return (*purchaseRepo)(s) }

type purchaseRepo Store

func (r *purchaseRepo) store() *Store { return (*Store)(r) }

func (r *purchaseRepo) Create(ctx context.Context, p *purchases.Purchase) error {
	s := r.store()
	defer s.enter(ctx)()

	for _, existing := range s.state.purchases {
		if existing.PurchaseRef == p.PurchaseRef {
			return apperror.NewDuplicate("purchase", "purchase_ref", strconv.FormatInt(p.PurchaseRef, 10))
		}
	}
	s.state.purchases = append(s.state.purchases, *p)
	return nil
}

func (r *purchaseRepo) GetByID(ctx context.Context, purchaseID id.ID) (*purchases.Purchase, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, p := range s.state.purchases {
		if p.ID == purchaseID {
			out := p
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("purchase", purchaseID)
}

func (r *purchaseRepo) GetByRef(ctx context.Context, purchaseRef int64) (*purchases.Purchase, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, p := range s.state.purchases {
		if p.PurchaseRef == purchaseRef {
			out := p
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("purchase", purchaseRef)
}

func (r *purchaseRepo) Update(ctx context.Context, p *purchases.Purchase) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.purchases {
		if s.state.purchases[i].ID == p.ID {
			s.state.purchases[i] = *p
			return nil
		}
	}
	return apperror.NewNotFound("purchase", p.ID)
}

func (r *purchaseRepo) Delete(ctx context.Context, purchaseID id.ID) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.purchases {
		if s.state.purchases[i].ID == purchaseID {
			s.state.purchases = append(s.state.purchases[:i], s.state.purchases[i+1:]...)
			return nil
		}
	}
	return apperror.NewNotFound("purchase", purchaseID)
}

func (r *purchaseRepo) List(ctx context.Context) ([]purchases.Purchase, error) {
	s := r.store()
	defer s.enter(ctx)()

	out := make([]purchases.Purchase, len(s.state.purchases))
	copy(out, s.state.purchases)
	return out, nil
}

func (r *purchaseRepo) ExistsByRef(ctx context.Context, purchaseRef int64) (bool, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, p := range s.state.purchases {
		if p.PurchaseRef == purchaseRef {
			return true, nil
		}
	}
	return false, nil
}

func (r *purchaseRepo) ListUnboundRefs(ctx context.Context) ([]purchases.UnboundPurchase, error) {
	s := r.store()
	defer s.enter(ctx)()

	bound := make(map[int64]struct{}, len(s.state.lots))
	for _, lot := range s.state.lots {
		bound[lot.PurchaseRef] = struct{}{}
	}

	var out []purchases.UnboundPurchase
	for _, p := range s.state.purchases {
		if _, ok := bound[p.PurchaseRef]; !ok {
			out = append(out, purchases.UnboundPurchase{
				PurchaseRef: p.PurchaseRef,
				ProductName: p.ProductName,
			})
		}
	}
	return out, nil
}

package memory

import (
	"context"
	"sort"

	"kardex/internal/core/apperror"
	"kardex/internal/core/id"
	"kardex/internal/core/types"
	"kardex/internal/domain/inventory"
)

// LotRepo returns the inventory.Repository view of the store.
func (s *Store) LotRepo() inventory.Repository { return (*lotRepo)(s) }

type lotRepo Store

func (r *lotRepo) store() *Store { return (*Store)(r) }

func (r *lotRepo) Create(ctx context.Context, lot *inventory.Lot) error {
	s := r.store()
	defer s.enter(ctx)()

	for _, existing := range s.state.lots {
		if existing.PurchaseRef == lot.PurchaseRef {
			return apperror.NewConflict("purchase is already bound to an inventory lot").
				WithDetail("purchaseRef", lot.PurchaseRef)
		}
	}
	s.state.lots = append(s.state.lots, *lot)
	return nil
}

func (r *lotRepo) GetByID(ctx context.Context, lotID id.ID) (*inventory.Lot, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, lot := range s.state.lots {
		if lot.ID == lotID {
			out := lot
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("lot", lotID)
}

func (r *lotRepo) ExistsByPurchaseRef(ctx context.Context, purchaseRef int64) (bool, error) {
	s := r.store()
	defer s.enter(ctx)()

	for _, lot := range s.state.lots {
		if lot.PurchaseRef == purchaseRef {
			return true, nil
		}
	}
	return false, nil
}

func (r *lotRepo) List(ctx context.Context) ([]inventory.Lot, error) {
	s := r.store()
	defer s.enter(ctx)()

	out := make([]inventory.Lot, len(s.state.lots))
	copy(out, s.state.lots)
	return out, nil
}

func (r *lotRepo) ListByProduct(ctx context.Context, productName string) ([]inventory.Lot, error) {
	s := r.store()
	defer s.enter(ctx)()

	var out []inventory.Lot
	for _, lot := range s.state.lots {
		if lot.ProductName == productName {
			out = append(out, lot)
		}
	}
	return out, nil
}

// ListBySKUForUpdate has no row locks to take here; the transaction mutex
// already serializes writers. Ordering is the FIFO contract: oldest
// received_date first, unreceived lots last, creation order on ties.
func (r *lotRepo) ListBySKUForUpdate(ctx context.Context, sku string) ([]inventory.Lot, error) {
	s := r.store()
	defer s.enter(ctx)()

	var out []inventory.Lot
	for _, lot := range s.state.lots {
		if lot.SKU == sku {
			out = append(out, lot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].ReceivedDate, out[j].ReceivedDate
		switch {
		case a == nil && b == nil:
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		case a == nil:
			return false
		case b == nil:
			return true
		case a.Equal(*b):
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		default:
			return a.Before(*b)
		}
	})
	return out, nil
}

// ListByProductForUpdate orders largest on-hand quantity first, creation
// order on ties.
func (r *lotRepo) ListByProductForUpdate(ctx context.Context, productName string) ([]inventory.Lot, error) {
	s := r.store()
	defer s.enter(ctx)()

	var out []inventory.Lot
	for _, lot := range s.state.lots {
		if lot.ProductName == productName {
			out = append(out, lot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].OnHandQuantity != out[j].OnHandQuantity {
			return out[i].OnHandQuantity > out[j].OnHandQuantity
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *lotRepo) UpdateQuantity(ctx context.Context, lotID id.ID, quantity int64) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.lots {
		if s.state.lots[i].ID != lotID {
			continue
		}
		if quantity < 0 {
			// Final guard, mirrors the database check constraint.
			lot := s.state.lots[i]
			return apperror.NewInsufficientStock(lot.ProductName, lot.OnHandQuantity-quantity, lot.OnHandQuantity)
		}
		s.state.lots[i].OnHandQuantity = quantity
		s.state.lots[i].Version++
		return nil
	}
	return apperror.NewNotFound("lot", lotID)
}

func (r *lotRepo) UpdateSalePriceByProduct(ctx context.Context, productName string, price types.Money) (int64, error) {
	s := r.store()
	defer s.enter(ctx)()

	var n int64
	for i := range s.state.lots {
		if s.state.lots[i].ProductName == productName {
			s.state.lots[i].SalePrice = price
			s.state.lots[i].Version++
			n++
		}
	}
	return n, nil
}

func (r *lotRepo) DeleteByProduct(ctx context.Context, productName string) (int64, error) {
	s := r.store()
	defer s.enter(ctx)()

	var kept []inventory.Lot
	var n int64
	for _, lot := range s.state.lots {
		if lot.ProductName == productName {
			n++
			continue
		}
		kept = append(kept, lot)
	}
	s.state.lots = kept
	return n, nil
}

func (r *lotRepo) DeleteByPurchaseRef(ctx context.Context, purchaseRef int64) error {
	s := r.store()
	defer s.enter(ctx)()

	for i := range s.state.lots {
		if s.state.lots[i].PurchaseRef == purchaseRef {
			s.state.lots = append(s.state.lots[:i], s.state.lots[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *lotRepo) AggregateByProduct(ctx context.Context) ([]inventory.ProductStock, error) {
	s := r.store()
	defer s.enter(ctx)()
	return aggregate(s.state.lots), nil
}

// aggregate folds lot rows into per-product stock rows: weighted average
// unit cost, max sale price, summed on-hand, latest received date.
func aggregate(lots []inventory.Lot) []inventory.ProductStock {
	byProduct := make(map[string][]inventory.Lot)
	var names []string
	for _, lot := range lots {
		if _, seen := byProduct[lot.ProductName]; !seen {
			names = append(names, lot.ProductName)
		}
		byProduct[lot.ProductName] = append(byProduct[lot.ProductName], lot)
	}
	sort.Strings(names)

	out := make([]inventory.ProductStock, 0, len(names))
	for _, name := range names {
		out = append(out, aggregateProduct(name, byProduct[name]))
	}
	return out
}

func aggregateProduct(name string, lots []inventory.Lot) inventory.ProductStock {
	row := inventory.ProductStock{
		ProductName: name,
		SKU:         lots[0].SKU,
		SalePrice:   lots[0].SalePrice,
	}

	costWeighted := types.ZeroMoney()
	costPlain := types.ZeroMoney()
	for _, lot := range lots {
		row.OnHandQuantity += lot.OnHandQuantity
		costWeighted = costWeighted.Add(lot.UnitCost.Mul(types.MoneyFromInt(lot.OnHandQuantity)))
		costPlain = costPlain.Add(lot.UnitCost)
		if lot.SalePrice.GreaterThan(row.SalePrice) {
			row.SalePrice = lot.SalePrice
		}
		if lot.ReceivedDate != nil &&
			(row.LastReceivedDate == nil || lot.ReceivedDate.After(*row.LastReceivedDate)) {
			d := *lot.ReceivedDate
			row.LastReceivedDate = &d
		}
	}

	// Weighted average degrades to a plain average when nothing is on hand.
	if row.OnHandQuantity > 0 {
		row.UnitCost = costWeighted.Div(types.MoneyFromInt(row.OnHandQuantity))
	} else {
		row.UnitCost = costPlain.Div(types.MoneyFromInt(int64(len(lots))))
	}
	return row
}

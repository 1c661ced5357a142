// Package memory provides an in-memory implementation of every repository
// plus a serializing transaction manager. It backs the domain test suites
// and local runs without Postgres.
//
// Transactions take one store-wide mutex and snapshot the full state, so a
// failed transaction rolls back exactly like the database would and two
// concurrent writers are strictly ordered.
package memory

import (
	"context"
	"slices"
	"sync"

	"kardex/internal/domain/inventory"
	"kardex/internal/domain/products"
	"kardex/internal/domain/purchases"
	"kardex/internal/domain/replenishments"
	"kardex/internal/domain/sales"
)

type txMarkerKey struct{}

// Store holds all aggregates behind a single mutex.
type Store struct {
	mu    sync.Mutex
	state state
}

type state struct {
	products       []products.ProductSKU
	purchases      []purchases.Purchase
	lots           []inventory.Lot
	sales          []sales.Sale
	replenishments []replenishments.Replenishment
}

func (st state) clone() state {
	return state{
		products:       slices.Clone(st.products),
		purchases:      slices.Clone(st.purchases),
		lots:           slices.Clone(st.lots),
		sales:          slices.Clone(st.sales),
		replenishments: slices.Clone(st.replenishments),
	}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// RunInTransaction executes fn holding the store mutex. Nested calls run in
// the already-open transaction. On error the pre-transaction state is
// restored.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txMarkerKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.state.clone()
	err := fn(context.WithValue(ctx, txMarkerKey{}, struct{}{}))
	if err != nil {
		s.state = snapshot
	}
	return err
}

// ReadOnly executes fn holding the store mutex. The memory store has no
// cheaper read path, so it shares the write implementation.
func (s *Store) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.RunInTransaction(ctx, fn)
}

// enter takes the mutex unless ctx is already inside a transaction.
// Callers must invoke the returned func when done.
func (s *Store) enter(ctx context.Context) func() {
	if ctx.Value(txMarkerKey{}) != nil {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kardex/internal/core/id"
	"kardex/internal/core/types"
	"kardex/internal/domain/purchases"
	"kardex/internal/infrastructure/storage/memory"
)

func newPurchase() *purchases.Purchase {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &purchases.Purchase{
		ID:                   id.New(),
		PurchaseRef:          123456,
		Supplier:             "Acme Corp",
		ProductName:          "Widget",
		OrderedQuantity:      100,
		UnitCost:             types.MustMoney("2.50"),
		OrderDate:            now,
		ExpectedDeliveryDate: now.AddDate(0, 0, 9),
		CreatedAt:            now,
		UpdatedAt:            now,
		Version:              1,
	}
}

func TestTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	boom := errors.New("boom")
	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := store.PurchaseRepo().Create(ctx, newPurchase()); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := store.PurchaseRepo().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "failed transaction leaves no trace")
}

func TestTransactionCommitsOnSuccess(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		return store.PurchaseRepo().Create(ctx, newPurchase())
	})
	require.NoError(t, err)

	all, err := store.PurchaseRepo().List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestNestedTransactionReusesOuter(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()

	boom := errors.New("boom")
	err := store.RunInTransaction(ctx, func(ctx context.Context) error {
		inner := store.RunInTransaction(ctx, func(ctx context.Context) error {
			return store.PurchaseRepo().Create(ctx, newPurchase())
		})
		require.NoError(t, inner)
		// The outer failure must undo the inner write too.
		return boom
	})
	require.ErrorIs(t, err, boom)

	all, err := store.PurchaseRepo().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

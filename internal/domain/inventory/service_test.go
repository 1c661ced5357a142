package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kardex/internal/core/apperror"
	"kardex/internal/core/refgen"
	"kardex/internal/core/types"
	"kardex/internal/domain/inventory"
	"kardex/internal/domain/products"
	"kardex/internal/domain/purchases"
	"kardex/internal/infrastructure/storage/memory"
)

type fixture struct {
	store     *memory.Store
	purchases *purchases.Service
	inventory *inventory.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	productSvc := products.NewService(store.ProductRepo(), &refgen.MockGenerator{Refs: []int64{500001, 500002, 500003}})
	purchaseSvc := purchases.NewService(store.PurchaseRepo(), store.LotRepo(), productSvc, &refgen.MockGenerator{}, store)
	inventorySvc := inventory.NewService(store.LotRepo(), purchaseSvc, productSvc, store)
	return &fixture{store: store, purchases: purchaseSvc, inventory: inventorySvc}
}

func (f *fixture) createPurchase(t *testing.T, product string, quantity int64, unitCost string) *purchases.Purchase {
	t.Helper()
	p, err := f.purchases.Create(context.Background(), purchases.CreateInput{
		Supplier:             "Acme Corp",
		ProductName:          product,
		OrderedQuantity:      quantity,
		UnitCost:             types.MustMoney(unitCost),
		ExpectedDeliveryDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	return p
}

func TestBindPurchase(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p := f.createPurchase(t, "Widget", 100, "2.50")

	lot, err := f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney("4.00"))
	require.NoError(t, err)

	assert.Equal(t, p.PurchaseRef, lot.PurchaseRef)
	assert.Equal(t, "Widget", lot.ProductName)
	assert.Equal(t, "500001", lot.SKU)
	assert.Equal(t, int64(100), lot.OnHandQuantity)
	assert.True(t, lot.UnitCost.Equal(types.MustMoney("2.50")))
	assert.True(t, lot.SalePrice.Equal(types.MustMoney("4.00")))
	assert.Equal(t, inventory.StatusReceived, lot.Status)
	require.NotNil(t, lot.ReceivedDate)
}

func TestBindPurchaseTwiceConflicts(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p := f.createPurchase(t, "Widget", 100, "2.50")

	_, err := f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney("4.00"))
	require.NoError(t, err)

	_, err = f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney("4.00"))
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)
}

func TestBindPurchaseUnknownRef(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.inventory.BindPurchase(ctx, 999999, types.MustMoney("4.00"))
	assert.True(t, apperror.IsNotFound(err))
}

func TestBindPurchaseRequiresPositivePrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p := f.createPurchase(t, "Widget", 100, "2.50")

	_, err := f.inventory.BindPurchase(ctx, p.PurchaseRef, types.ZeroMoney())
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestLotSnapshotSurvivesPurchaseEdit(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p := f.createPurchase(t, "Widget", 100, "2.50")
	lot, err := f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney("4.00"))
	require.NoError(t, err)

	_, err = f.purchases.Update(ctx, p.ID, purchases.UpdateInput{
		Supplier:             p.Supplier,
		ProductName:          p.ProductName,
		OrderedQuantity:      500,
		UnitCost:             types.MustMoney("9.99"),
		ExpectedDeliveryDate: p.ExpectedDeliveryDate,
	})
	require.NoError(t, err)

	lots, err := f.inventory.ListLots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, lot.ID, lots[0].ID)
	assert.Equal(t, int64(100), lots[0].OnHandQuantity, "lot keeps the bind-time quantity")
	assert.True(t, lots[0].UnitCost.Equal(types.MustMoney("2.50")), "lot keeps the bind-time cost")
}

func TestUpdateSalePriceCoversAllLots(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	for _, qty := range []int64{100, 50} {
		p := f.createPurchase(t, "Widget", qty, "2.50")
		_, err := f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney("4.00"))
		require.NoError(t, err)
	}

	require.NoError(t, f.inventory.UpdateSalePrice(ctx, "Widget", types.MustMoney("5.25")))

	lots, err := f.inventory.ListLots(ctx)
	require.NoError(t, err)
	require.Len(t, lots, 2)
	for _, lot := range lots {
		assert.True(t, lot.SalePrice.Equal(types.MustMoney("5.25")))
	}
}

func TestUpdateSalePriceUnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	err := f.inventory.UpdateSalePrice(ctx, "Unknown", types.MustMoney("5.25"))
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteByProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	p := f.createPurchase(t, "Widget", 100, "2.50")
	_, err := f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney("4.00"))
	require.NoError(t, err)

	require.NoError(t, f.inventory.DeleteByProduct(ctx, "Widget"))

	lots, err := f.inventory.ListLots(ctx)
	require.NoError(t, err)
	assert.Empty(t, lots)

	// Purchases are a separate ledger and stay intact.
	_, err = f.purchases.GetByID(ctx, p.ID)
	assert.NoError(t, err)
}

func TestDeleteByProductUnknown(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	err := f.inventory.DeleteByProduct(ctx, "Unknown")
	assert.True(t, apperror.IsNotFound(err))
}

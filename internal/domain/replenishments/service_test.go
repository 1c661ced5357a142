package replenishments_test

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
	"kardex/internal/domain/replenishments"
	"kardex/internal/domain/sales"
	"kardex/internal/infrastructure/storage/memory"
)

type fixture struct {
	store          *memory.Store
	purchases      *purchases.Service
	inventory      *inventory.Service
	sales          *sales.Service
	replenishments *replenishments.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	productSvc := products.NewService(store.ProductRepo(), &refgen.MockGenerator{Refs: []int64{800001, 800002}})
	purchaseSvc := purchases.NewService(store.PurchaseRepo(), store.LotRepo(), productSvc, &refgen.MockGenerator{}, store)
	return &fixture{
		store:          store,
		purchases:      purchaseSvc,
		inventory:      inventory.NewService(store.LotRepo(), purchaseSvc, productSvc, store),
		sales:          sales.NewService(store.SaleRepo(), store.LotRepo(), store),
		replenishments: replenishments.NewService(store.ReplenishmentRepo(), store.LotRepo(), &refgen.MockGenerator{Refs: []int64{910001, 910002}}, store),
	}
}

func (f *fixture) addLot(t *testing.T, product string, quantity int64, unitCost string) *inventory.Lot {
	t.Helper()
	ctx := context.Background()

	p, err := f.purchases.Create(ctx, purchases.CreateInput{
		Supplier:             "Acme Corp",
		ProductName:          product,
		OrderedQuantity:      quantity,
		UnitCost:             types.MustMoney(unitCost),
		ExpectedDeliveryDate: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	lot, err := f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney("4.00"))
	require.NoError(t, err)
	return lot
}

func (f *fixture) onHand(t *testing.T, product string) int64 {
	t.Helper()
	lots, err := f.inventory.ListLots(context.Background())
	require.NoError(t, err)
	var total int64
	for _, lot := range lots {
		if lot.ProductName == product {
			total += lot.OnHandQuantity
		}
	}
	return total
}

func TestCreateReplenishment(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	rec, err := f.replenishments.Create(ctx, replenishments.CreateInput{
		ProductName:      "Widget",
		Quantity:         40,
		DestinationStore: "Store 12",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(910001), rec.ReplenishmentRef)
	assert.Equal(t, int64(40), rec.Quantity)
	assert.Equal(t, "Store 12", rec.DestinationStore)
	assert.Equal(t, lot.SKU, rec.SKU, "sku is copied from the debited lot")
	assert.Equal(t, int64(60), f.onHand(t, "Widget"))
}

func TestCreateReplenishmentDrainsLargestFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	small := f.addLot(t, "Widget", 10, "2.00")
	large := f.addLot(t, "Widget", 50, "3.00")

	_, err := f.replenishments.Create(ctx, replenishments.CreateInput{
		ProductName:      "Widget",
		Quantity:         55,
		DestinationStore: "Store 12",
	})
	require.NoError(t, err)

	lots, err := f.inventory.ListLots(ctx)
	require.NoError(t, err)
	byID := map[string]int64{}
	for _, lot := range lots {
		byID[lot.ID.String()] = lot.OnHandQuantity
	}
	assert.Equal(t, int64(0), byID[large.ID.String()], "largest lot is drained first")
	assert.Equal(t, int64(5), byID[small.ID.String()], "remainder spills into the smaller lot")
}

func TestCreateReplenishmentInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 100, "2.50")

	_, err := f.replenishments.Create(ctx, replenishments.CreateInput{
		ProductName:      "Widget",
		Quantity:         101,
		DestinationStore: "Store 12",
	})
	require.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(100), f.onHand(t, "Widget"))
	recorded, err := f.replenishments.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestCreateReplenishmentUnknownProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.replenishments.Create(ctx, replenishments.CreateInput{
		ProductName:      "Unknown",
		Quantity:         1,
		DestinationStore: "Store 12",
	})
	assert.True(t, apperror.IsNotFound(err))
}

// The ledger is strict about the running total: selling 30 and withdrawing 50
// from a 100-unit lot leaves 20, so a further 21-unit withdrawal must fail.
func TestLedgerSequenceEnforcesRunningTotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	_, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 30})
	require.NoError(t, err)

	_, err = f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 50, DestinationStore: "Store 12"})
	require.NoError(t, err)
	require.Equal(t, int64(20), f.onHand(t, "Widget"))

	_, err = f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 21, DestinationStore: "Store 12"})
	require.True(t, apperror.IsInsufficientStock(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, int64(21), appErr.Details["requested"])
	assert.Equal(t, int64(20), appErr.Details["available"])
	assert.Equal(t, int64(20), f.onHand(t, "Widget"))
}

func TestUpdateReplenishmentAppliesDelta(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 100, "2.50")

	rec, err := f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 40, DestinationStore: "Store 12"})
	require.NoError(t, err)

	updated, err := f.replenishments.Update(ctx, rec.ID, replenishments.UpdateInput{Quantity: 70, DestinationStore: "Store 12"})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, int64(30), f.onHand(t, "Widget"), "only the 30-unit delta is debited")

	_, err = f.replenishments.Update(ctx, rec.ID, replenishments.UpdateInput{Quantity: 10, DestinationStore: "Store 7"})
	require.NoError(t, err)
	assert.Equal(t, int64(90), f.onHand(t, "Widget"), "the 60-unit cut is credited back")
}

func TestUpdateReplenishmentRaiseBeyondStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 100, "2.50")

	rec, err := f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 40, DestinationStore: "Store 12"})
	require.NoError(t, err)

	_, err = f.replenishments.Update(ctx, rec.ID, replenishments.UpdateInput{Quantity: 101, DestinationStore: "Store 12"})
	require.True(t, apperror.IsInsufficientStock(err))

	assert.Equal(t, int64(60), f.onHand(t, "Widget"))
	current, err := f.replenishments.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(40), current.Quantity)
}

func TestDeleteReplenishmentCreditsStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 100, "2.50")

	rec, err := f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 40, DestinationStore: "Store 12"})
	require.NoError(t, err)

	require.NoError(t, f.replenishments.Delete(ctx, rec.ID))

	assert.Equal(t, int64(100), f.onHand(t, "Widget"))
	_, err = f.replenishments.GetByID(ctx, rec.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateReplenishmentValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "", Quantity: 1, DestinationStore: "Store 12"})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 0, DestinationStore: "Store 12"})
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 1})
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "destinationStore", appErr.Details["field"])
}

package reports_test

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
	"kardex/internal/domain/reports"
	"kardex/internal/infrastructure/storage/memory"
)

type fixture struct {
	purchases      *purchases.Service
	inventory      *inventory.Service
	replenishments *replenishments.Service
	reports        *reports.Service
}

func newFixture() *fixture {
	store := memory.NewStore()
	productSvc := products.NewService(store.ProductRepo(), &refgen.MockGenerator{})
	purchaseSvc := purchases.NewService(store.PurchaseRepo(), store.LotRepo(), productSvc, &refgen.MockGenerator{}, store)
	return &fixture{
		purchases:      purchaseSvc,
		inventory:      inventory.NewService(store.LotRepo(), purchaseSvc, productSvc, store),
		replenishments: replenishments.NewService(store.ReplenishmentRepo(), store.LotRepo(), &refgen.MockGenerator{}, store),
		reports:        reports.NewService(store.ReportReader()),
	}
}

func (f *fixture) addLot(t *testing.T, product string, quantity int64, unitCost, salePrice string) {
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

	_, err = f.inventory.BindPurchase(ctx, p.PurchaseRef, types.MustMoney(salePrice))
	require.NoError(t, err)
}

func TestStockSummaryWeightedAverageCost(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 100, "2.00", "4.00")
	f.addLot(t, "Widget", 50, "3.50", "5.00")

	rows, err := f.reports.StockSummary(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Widget", row.ProductName)
	assert.Equal(t, int64(150), row.OnHandQuantity)
	// (100*2.00 + 50*3.50) / 150 = 2.50
	assert.True(t, row.UnitCost.Equal(types.MustMoney("2.50")), "unit cost is quantity-weighted: got %s", row.UnitCost)
	assert.True(t, row.SalePrice.Equal(types.MustMoney("5.00")), "sale price is the max across lots")
	require.NotNil(t, row.LastReceivedDate)
}

func TestStockSummaryPlainAverageWhenDrained(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 10, "2.00", "4.00")
	f.addLot(t, "Widget", 20, "3.00", "4.00")

	_, err := f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Widget", Quantity: 30, DestinationStore: "Store 12"})
	require.NoError(t, err)

	rows, err := f.reports.StockSummary(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(0), rows[0].OnHandQuantity)
	// With nothing on hand the weighted average is undefined; fall back to
	// the plain average (2.00 + 3.00) / 2 = 2.50.
	assert.True(t, rows[0].UnitCost.Equal(types.MustMoney("2.50")), "got %s", rows[0].UnitCost)
}

func TestStockSummarySortedByProduct(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 10, "2.00", "4.00")
	f.addLot(t, "Anvil", 5, "9.00", "15.00")

	rows, err := f.reports.StockSummary(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Anvil", rows[0].ProductName)
	assert.Equal(t, "Widget", rows[1].ProductName)
}

func TestProductAvailability(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 40, "2.00", "4.00")

	row, err := f.reports.ProductAvailability(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(40), row.OnHandQuantity)

	_, err = f.reports.ProductAvailability(ctx, "Unknown")
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.reports.ProductAvailability(ctx, "")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAvailableProductsDropsDrained(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	f.addLot(t, "Widget", 25, "2.00", "4.00")
	f.addLot(t, "Anvil", 5, "9.00", "15.00")

	_, err := f.replenishments.Create(ctx, replenishments.CreateInput{ProductName: "Anvil", Quantity: 5, DestinationStore: "Store 12"})
	require.NoError(t, err)

	available, err := f.reports.AvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, "Widget", available[0].ProductName)
}

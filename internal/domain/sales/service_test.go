package sales_test

import (
	"context"
	"sync"
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
	"kardex/internal/domain/sales"
	"kardex/internal/infrastructure/storage/memory"
)

type fixture struct {
	store     *memory.Store
	purchases *purchases.Service
	inventory *inventory.Service
	sales     *sales.Service

	mu   sync.Mutex
	tick int64
}

// clock returns a strictly increasing time so every bind gets a distinct
// received date and FIFO ordering is deterministic.
func (f *fixture) clock() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tick++
	return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(f.tick) * time.Minute)
}

func newFixture() *fixture {
	f := &fixture{store: memory.NewStore()}
	productSvc := products.NewService(f.store.ProductRepo(), &refgen.MockGenerator{Refs: []int64{700001, 700002}})
	f.purchases = purchases.NewService(f.store.PurchaseRepo(), f.store.LotRepo(), productSvc, &refgen.MockGenerator{}, f.store).WithClock(f.clock)
	f.inventory = inventory.NewService(f.store.LotRepo(), f.purchases, productSvc, f.store).WithClock(f.clock)
	f.sales = sales.NewService(f.store.SaleRepo(), f.store.LotRepo(), f.store).WithClock(f.clock)
	return f
}

// addLot creates a purchase and binds it, producing one received lot.
// Lots bind in call order, so earlier calls are older for FIFO purposes.
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

func TestCreateSaleDebitsStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	sale, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 30})
	require.NoError(t, err)

	assert.Equal(t, "Widget", sale.ProductName)
	assert.Equal(t, int64(30), sale.QuantitySold)
	assert.True(t, sale.UnitPrice.Equal(types.MustMoney("2.50")), "price snapshots the first debited lot's cost")
	assert.True(t, sale.TotalAmount.Equal(types.MustMoney("75.00")))
	assert.Equal(t, int64(70), f.onHand(t, "Widget"))
}

func TestCreateSaleSpillsAcrossLotsFIFO(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	older := f.addLot(t, "Widget", 10, "2.00")
	newer := f.addLot(t, "Widget", 50, "3.00")

	sale, err := f.sales.Create(ctx, sales.CreateInput{SKU: older.SKU, QuantitySold: 25})
	require.NoError(t, err)

	assert.True(t, sale.UnitPrice.Equal(types.MustMoney("2.00")), "oldest lot sets the price snapshot")

	lots, err := f.inventory.ListLots(ctx)
	require.NoError(t, err)
	byID := map[string]int64{}
	for _, lot := range lots {
		byID[lot.ID.String()] = lot.OnHandQuantity
	}
	assert.Equal(t, int64(0), byID[older.ID.String()], "oldest lot is drained first")
	assert.Equal(t, int64(35), byID[newer.ID.String()], "remainder spills into the next lot")
}

func TestCreateSaleInsufficientStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	_, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 101})
	require.True(t, apperror.IsInsufficientStock(err))

	appErr, _ := apperror.AsAppError(err)
	assert.Equal(t, int64(101), appErr.Details["requested"])
	assert.Equal(t, int64(100), appErr.Details["available"])

	// Nothing was debited and no sale was recorded.
	assert.Equal(t, int64(100), f.onHand(t, "Widget"))
	recorded, err := f.sales.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, recorded)
}

func TestCreateSaleUnknownSKU(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.sales.Create(ctx, sales.CreateInput{SKU: "000000", QuantitySold: 1})
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreateSaleValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	_, err := f.sales.Create(ctx, sales.CreateInput{SKU: "", QuantitySold: 1})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	_, err = f.sales.Create(ctx, sales.CreateInput{SKU: "700001", QuantitySold: 0})
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdateSaleRaiseDebitsDelta(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	sale, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 30})
	require.NoError(t, err)

	updated, err := f.sales.Update(ctx, sale.ID, sales.UpdateInput{QuantitySold: 45})
	require.NoError(t, err)

	assert.Equal(t, int64(45), updated.QuantitySold)
	assert.True(t, updated.TotalAmount.Equal(types.MustMoney("112.50")), "total recomputed from the original price")
	assert.Equal(t, 2, updated.Version)
	assert.Equal(t, int64(55), f.onHand(t, "Widget"), "only the 15-unit delta is debited")
}

func TestUpdateSaleCutCreditsDelta(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	sale, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 30})
	require.NoError(t, err)

	_, err = f.sales.Update(ctx, sale.ID, sales.UpdateInput{QuantitySold: 10})
	require.NoError(t, err)

	assert.Equal(t, int64(90), f.onHand(t, "Widget"), "the 20-unit cut is credited back")
}

func TestUpdateSaleRaiseBeyondStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	sale, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 30})
	require.NoError(t, err)

	_, err = f.sales.Update(ctx, sale.ID, sales.UpdateInput{QuantitySold: 101})
	require.True(t, apperror.IsInsufficientStock(err))

	// The failed update leaves both ledgers untouched.
	assert.Equal(t, int64(70), f.onHand(t, "Widget"))
	current, err := f.sales.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(30), current.QuantitySold)
	assert.Equal(t, 1, current.Version)
}

func TestDeleteSaleCreditsStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	sale, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 30})
	require.NoError(t, err)

	require.NoError(t, f.sales.Delete(ctx, sale.ID))

	assert.Equal(t, int64(100), f.onHand(t, "Widget"))
	_, err = f.sales.GetByID(ctx, sale.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestDeleteSaleAfterLotsRemoved(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	sale, err := f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 30})
	require.NoError(t, err)

	require.NoError(t, f.inventory.DeleteByProduct(ctx, "Widget"))

	// The credit has nowhere to go; the delete still succeeds.
	require.NoError(t, f.sales.Delete(ctx, sale.ID))
	_, err = f.sales.GetByID(ctx, sale.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestConcurrentSalesCannotOverdraw(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	lot := f.addLot(t, "Widget", 100, "2.50")

	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.sales.Create(ctx, sales.CreateInput{SKU: lot.SKU, QuantitySold: 60})
		}(i)
	}
	wg.Wait()

	var ok, insufficient int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperror.IsInsufficientStock(err):
			insufficient++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one sale wins")
	assert.Equal(t, 1, insufficient, "the loser is rejected, not queued")
	assert.Equal(t, int64(40), f.onHand(t, "Widget"))
}

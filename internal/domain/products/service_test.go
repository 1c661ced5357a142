package products_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kardex/internal/core/apperror"
	"kardex/internal/core/refgen"
	"kardex/internal/domain/products"
	"kardex/internal/infrastructure/storage/memory"
)

func newService(refs refgen.Generator) *products.Service {
	return products.NewService(memory.NewStore().ProductRepo(), refs)
}

func TestEnsureSKUGeneratesOnFirstUse(t *testing.T) {
	ctx := context.Background()
	svc := newService(&refgen.MockGenerator{Refs: []int64{654321}})

	sku, err := svc.EnsureSKU(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, "654321", sku)

	got, err := svc.Lookup(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, sku, got)
}

func TestEnsureSKUIsStable(t *testing.T) {
	ctx := context.Background()
	svc := newService(&refgen.MockGenerator{Refs: []int64{111111, 222222}})

	first, err := svc.EnsureSKU(ctx, "Widget")
	require.NoError(t, err)

	second, err := svc.EnsureSKU(ctx, "Widget")
	require.NoError(t, err)
	assert.Equal(t, first, second, "repeated calls reuse the registered sku")

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestEnsureSKURedrawsOnCollision(t *testing.T) {
	ctx := context.Background()
	var seq []int64
	gen := refgen.NewWithDraw(func() int64 {
		candidates := []int64{333333, 333333, 444444}
		ref := candidates[len(seq)]
		seq = append(seq, ref)
		return ref
	})
	svc := newService(gen)

	first, err := svc.EnsureSKU(ctx, "Widget")
	require.NoError(t, err)
	require.Equal(t, "333333", first)

	second, err := svc.EnsureSKU(ctx, "Gadget")
	require.NoError(t, err)
	assert.Equal(t, "444444", second)
	assert.Len(t, seq, 3, "taken candidate forces one redraw")
}

func TestEnsureSKUValidation(t *testing.T) {
	ctx := context.Background()
	svc := newService(&refgen.MockGenerator{})

	_, err := svc.EnsureSKU(ctx, "   ")
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestLookupUnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc := newService(&refgen.MockGenerator{})

	_, err := svc.Lookup(ctx, "Unknown")
	assert.True(t, apperror.IsNotFound(err))
}

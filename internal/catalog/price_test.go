package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func TestNormalizePricing_NestedTakesPrecedence(t *testing.T) {
	raw := RawProduct{
		Price:   9999,
		Pricing: &Pricing{BasePrice: 1000, SalePrice: f64(800)},
	}

	got := normalizePricing(&raw)

	assert.Equal(t, 800.0, got.Price)
	require.NotNil(t, got.OriginalPrice)
	assert.Equal(t, 1000.0, *got.OriginalPrice)
	assert.True(t, got.IsSale)
}

func TestNormalizePricing_NestedWithoutSale(t *testing.T) {
	raw := RawProduct{Pricing: &Pricing{BasePrice: 1000}}

	got := normalizePricing(&raw)

	assert.Equal(t, 1000.0, got.Price)
	assert.Nil(t, got.OriginalPrice)
	assert.False(t, got.IsSale)
}

func TestNormalizePricing_FlatSale(t *testing.T) {
	raw := RawProduct{Price: 1000, SalePrice: f64(800)}

	got := normalizePricing(&raw)

	assert.Equal(t, 800.0, got.Price)
	require.NotNil(t, got.OriginalPrice)
	assert.Equal(t, 1000.0, *got.OriginalPrice)
	assert.True(t, got.IsSale)
}

func TestNormalizePricing_FlatSaleKeepsHigherOriginal(t *testing.T) {
	raw := RawProduct{Price: 1000, OriginalPrice: f64(1500), SalePrice: f64(800)}

	got := normalizePricing(&raw)

	assert.Equal(t, 800.0, got.Price)
	require.NotNil(t, got.OriginalPrice)
	assert.Equal(t, 1500.0, *got.OriginalPrice)
}

func TestNormalizePricing_InvertedOriginalSwaps(t *testing.T) {
	raw := RawProduct{Price: 1200, OriginalPrice: f64(1000)}

	got := normalizePricing(&raw)

	assert.Equal(t, 1000.0, got.Price)
	require.NotNil(t, got.OriginalPrice)
	assert.Equal(t, 1200.0, *got.OriginalPrice)
	assert.False(t, got.IsSale)
}

func TestNormalizePricing_CorrectOrderingUntouched(t *testing.T) {
	raw := RawProduct{Price: 1000, OriginalPrice: f64(1200)}

	got := normalizePricing(&raw)

	assert.Equal(t, 1000.0, got.Price)
	require.NotNil(t, got.OriginalPrice)
	assert.Equal(t, 1200.0, *got.OriginalPrice)
}

func TestNormalizePricing_OriginalNotAboveEffectiveIsUnset(t *testing.T) {
	for _, original := range []*float64{f64(1000), f64(900), nil} {
		raw := RawProduct{Price: 1000, OriginalPrice: original}
		got := normalizePricing(&raw)
		if original != nil && *original < 1000 {
			// Inverted values swap, then the guard applies to the result.
			assert.Equal(t, *original, got.Price)
			require.NotNil(t, got.OriginalPrice)
			assert.Greater(t, *got.OriginalPrice, got.Price)
		} else {
			assert.Nil(t, got.OriginalPrice)
		}
	}
}

func TestNormalizePricing_MissingPriceDefaultsToZero(t *testing.T) {
	got := normalizePricing(&RawProduct{})

	assert.Equal(t, 0.0, got.Price)
	assert.Nil(t, got.OriginalPrice)
	assert.False(t, got.IsSale)
}

package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeInventory_SumsAvailableStock(t *testing.T) {
	raw := RawProduct{
		Inventory: []InventoryRecord{
			{CurrentStock: 10, ReservedStock: 3},
			{CurrentStock: 5, ReservedStock: 0},
		},
	}

	got := normalizeInventory(&raw)

	assert.Equal(t, 12, got.StockQuantity)
	assert.True(t, got.InStock)
}

func TestNormalizeInventory_OverReservedGoesNegative(t *testing.T) {
	raw := RawProduct{
		Inventory: []InventoryRecord{
			{CurrentStock: 2, ReservedStock: 5},
		},
	}

	got := normalizeInventory(&raw)

	assert.Equal(t, -3, got.StockQuantity)
	assert.False(t, got.InStock)
}

func TestNormalizeInventory_EmptyPassesThroughFlatFields(t *testing.T) {
	inStock := true
	raw := RawProduct{InStock: &inStock, StockQuantity: 7}

	got := normalizeInventory(&raw)

	assert.Equal(t, 7, got.StockQuantity)
	assert.True(t, got.InStock)
}

func TestNormalizeInventory_AllAbsentDefaults(t *testing.T) {
	got := normalizeInventory(&RawProduct{})

	assert.Equal(t, 0, got.StockQuantity)
	assert.False(t, got.InStock)
}

func TestNormalizeInventory_CollectsSizes(t *testing.T) {
	raw := RawProduct{
		Inventory: []InventoryRecord{
			{CurrentStock: 1, Size: "A5"},
			{CurrentStock: 1},
			{CurrentStock: 1, Size: "A4"},
		},
	}

	got := normalizeInventory(&raw)

	assert.Equal(t, []string{"A5", "A4"}, got.Sizes)
}

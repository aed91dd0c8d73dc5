package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProduct_MissingImagesGetsPlaceholder(t *testing.T) {
	got := NormalizeProduct(RawProduct{ID: "p1", Name: "Sketchbook"})

	assert.Equal(t, []string{PlaceholderImage}, got.Images)
}

func TestNormalizeProduct_IdentifierImagesFiltered(t *testing.T) {
	raw := RawProduct{
		ID:     "p1",
		Images: json.RawMessage(`["68a1b2c3d4e5f6a7b8c9d0e1","68a1b2c3d4e5f6a7b8c9d0e2"]`),
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, []string{PlaceholderImage}, got.Images)
}

func TestNormalizeProduct_ImageObjectForms(t *testing.T) {
	raw := RawProduct{
		ID: "p1",
		Images: json.RawMessage(`[
			"/images/pen.jpg",
			{"url":"/images/a.jpg"},
			{"imageUrl":"/images/b.jpg"},
			{"path":"/images/c.jpg"},
			{"caption":"no usable field"}
		]`),
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, []string{"/images/pen.jpg", "/images/a.jpg", "/images/b.jpg", "/images/c.jpg"}, got.Images)
}

func TestNormalizeProduct_BrandPopulatedObject(t *testing.T) {
	raw := RawProduct{
		ID:    "p1",
		Brand: json.RawMessage(`{"_id":"68a1b2c3d4e5f6a7b8c9d0e1","name":"Acme"}`),
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, "Acme", got.Brand)
	assert.Equal(t, "68a1b2c3d4e5f6a7b8c9d0e1", got.BrandID)
}

func TestNormalizeProduct_BrandBareIDBecomesUnknown(t *testing.T) {
	raw := RawProduct{
		ID:    "p1",
		Brand: json.RawMessage(`"68a1b2c3d4e5f6a7b8c9d0e1"`),
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, UnknownBrand, got.Brand)
	assert.Equal(t, "68a1b2c3d4e5f6a7b8c9d0e1", got.BrandID)
}

func TestNormalizeProduct_BrandPlainName(t *testing.T) {
	got := NormalizeProduct(RawProduct{ID: "p1", Brand: json.RawMessage(`"Staedtler"`)})

	assert.Equal(t, "Staedtler", got.Brand)
}

func TestNormalizeProduct_AbsentBrandIsUnknownNotBlank(t *testing.T) {
	got := NormalizeProduct(RawProduct{ID: "p1"})

	assert.Equal(t, UnknownBrand, got.Brand)
	assert.NotEmpty(t, got.Brand)
}

func TestNormalizeProduct_CategoriesPreferNames(t *testing.T) {
	raw := RawProduct{
		ID: "p1",
		Categories: json.RawMessage(`[
			"Notebooks",
			"68a1b2c3d4e5f6a7b8c9d0e1",
			{"_id":"68a1b2c3d4e5f6a7b8c9d0e2","name":"Journals"}
		]`),
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, []string{"Notebooks", "Journals"}, got.Categories)
	assert.Equal(t, "Notebooks", got.Category)
}

func TestNormalizeProduct_CategoriesFallBackToIDs(t *testing.T) {
	raw := RawProduct{
		ID: "p1",
		Categories: json.RawMessage(`[
			"68a1b2c3d4e5f6a7b8c9d0e1",
			"68a1b2c3d4e5f6a7b8c9d0e2"
		]`),
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, []string{"68a1b2c3d4e5f6a7b8c9d0e1", "68a1b2c3d4e5f6a7b8c9d0e2"}, got.Categories)
}

func TestNormalizeProduct_ColorsMergedWithoutDedup(t *testing.T) {
	raw := RawProduct{
		ID:     "p1",
		Colors: json.RawMessage(`["Red",{"name":"Blue"},{"label":"Red"},"68a1b2c3d4e5f6a7b8c9d0e1"]`),
		Attributes: []AttributeRecord{
			{
				Attribute: struct {
					Name string `json:"name"`
					Slug string `json:"slug"`
				}{Name: "Color"},
				DisplayValue: "Green",
			},
			{
				Attribute: struct {
					Name string `json:"name"`
					Slug string `json:"slug"`
				}{Name: "Fabric"},
				DisplayValue: "Leather",
			},
		},
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, []string{"Red", "Blue", "Red", "Green"}, got.Colors)
}

func TestNormalizeProduct_SizesFromSizeChartAndInventory(t *testing.T) {
	raw := RawProduct{
		ID:        "p1",
		SizeChart: &SizeChart{Sizes: json.RawMessage(`["A5",{"size":"A4"}]`)},
		Inventory: []InventoryRecord{{CurrentStock: 3, Size: "A3"}},
	}

	got := NormalizeProduct(raw)

	assert.Equal(t, []string{"A5", "A4", "A3"}, got.AvailableSizes)
}

func TestNormalizeProduct_SlugFallsBackToID(t *testing.T) {
	got := NormalizeProduct(RawProduct{ID: "68a1b2c3d4e5f6a7b8c9d0e1"})

	assert.Equal(t, "68a1b2c3d4e5f6a7b8c9d0e1", got.Slug)
}

func TestNormalizeProduct_Idempotent(t *testing.T) {
	inputs := []RawProduct{
		{
			ID:      "p1",
			Name:    "Fountain Pen",
			Images:  json.RawMessage(`["68a1b2c3d4e5f6a7b8c9d0e1"]`),
			Brand:   json.RawMessage(`{"_id":"68a1b2c3d4e5f6a7b8c9d0e1","name":"Acme"}`),
			Pricing: &Pricing{BasePrice: 1000, SalePrice: f64(800)},
			Inventory: []InventoryRecord{
				{CurrentStock: 10, ReservedStock: 3, Size: "M"},
			},
			Categories: json.RawMessage(`["Pens","68a1b2c3d4d5f6a7b8c9d0e2"]`),
		},
		{
			ID:            "p2",
			Price:         1200,
			OriginalPrice: f64(1000),
			Brand:         json.RawMessage(`"68a1b2c3d4e5f6a7b8c9d0e1"`),
		},
		{
			ID:        "p3",
			Price:     500,
			SalePrice: f64(400),
			Colors:    json.RawMessage(`["Red","Blue"]`),
		},
	}

	for _, raw := range inputs {
		first := NormalizeProduct(raw)

		encoded, err := json.Marshal(first)
		require.NoError(t, err)

		var reraw RawProduct
		require.NoError(t, json.Unmarshal(encoded, &reraw))

		second := NormalizeProduct(reraw)
		assert.Equal(t, first, second, "product %s changed on second pass", raw.ID)
	}
}

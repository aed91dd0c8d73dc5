package catalog

import (
	"encoding/json"
	"strings"
)

// PlaceholderImage substitutes for products whose image list is empty after
// normalization.
const PlaceholderImage = "/images/logo.png"

// UnknownBrand is the display sentinel for a brand that could not be
// resolved to a name. It is never an empty string.
const UnknownBrand = "Unknown"

// NormalizeProduct maps a raw upstream payload to the canonical Product view
// model. It never fails on missing or malformed optional fields; every
// anomaly resolves to a defined default so a partially-populated record
// still renders as a usable card.
func NormalizeProduct(raw RawProduct) Product {
	brand := DecodeRef(raw.Brand, false)

	brandID := raw.BrandID
	if brand.ID != "" {
		brandID = brand.ID
	}

	brandName := strings.TrimSpace(brand.Name)
	if brandName == "" {
		brandName = UnknownBrand
	}

	names, ids := normalizeCategories(raw.Categories)

	categories := names
	if len(categories) == 0 {
		categories = ids
	}
	if categories == nil {
		categories = []string{}
	}

	category := raw.Category
	if len(names) > 0 {
		category = names[0]
	} else if len(ids) > 0 {
		category = ids[0]
	}

	pricing := normalizePricing(&raw)
	stock := normalizeInventory(&raw)

	slug := raw.Slug
	if slug == "" {
		slug = raw.ID
	}

	return Product{
		ID:             raw.ID,
		Name:           raw.Name,
		Slug:           slug,
		Description:    raw.Description,
		SKU:            raw.SKU,
		Status:         raw.Status,
		Images:         normalizeImages(raw.Images),
		Brand:          brandName,
		BrandID:        brandID,
		Categories:     categories,
		Category:       category,
		Price:          pricing.Price,
		OriginalPrice:  pricing.OriginalPrice,
		SalePrice:      pricing.SalePrice,
		IsSale:         pricing.IsSale,
		InStock:        stock.InStock,
		StockQuantity:  stock.StockQuantity,
		Colors:         normalizeColors(raw.Colors, raw.Attributes),
		AvailableSizes: normalizeSizes(&raw, stock.Sizes),
		CreatedAt:      raw.CreatedAt,
		UpdatedAt:      raw.UpdatedAt,
	}
}

// normalizeImages accepts string entries and object entries with
// url/imageUrl/path fields. Identifier-shaped strings are dropped; they are
// references that leaked into the image list, not URLs. An empty result
// falls back to the placeholder.
func normalizeImages(raw json.RawMessage) []string {
	var entries []json.RawMessage
	_ = json.Unmarshal(raw, &entries)

	var urls []string
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if s != "" && !IsObjectID(s) {
				urls = append(urls, s)
			}
			continue
		}

		var obj struct {
			URL      string `json:"url"`
			ImageURL string `json:"imageUrl"`
			Path     string `json:"path"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			continue
		}
		candidate := obj.URL
		if candidate == "" {
			candidate = obj.ImageURL
		}
		if candidate == "" {
			candidate = obj.Path
		}
		if candidate != "" {
			urls = append(urls, candidate)
		}
	}

	if len(urls) == 0 {
		return []string{PlaceholderImage}
	}
	return urls
}

// normalizeCategories classifies each element independently, preserving
// source order, into parallel name and id lists. An object element can
// contribute to both.
func normalizeCategories(raw json.RawMessage) (names, ids []string) {
	var entries []json.RawMessage
	_ = json.Unmarshal(raw, &entries)

	for _, entry := range entries {
		ref := DecodeRef(entry, true)
		switch ref.Kind {
		case RefNamed:
			names = append(names, ref.Name)
			if ref.ID != "" {
				ids = append(ids, ref.ID)
			}
		case RefID:
			ids = append(ids, ref.ID)
		}
	}
	return names, ids
}

// normalizeColors merges the top-level color list with color attributes, in
// encounter order, without deduplication. Identifier-shaped entries are
// filtered out.
func normalizeColors(raw json.RawMessage, attributes []AttributeRecord) []string {
	var entries []json.RawMessage
	_ = json.Unmarshal(raw, &entries)

	var colors []string
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if strings.TrimSpace(s) != "" && !IsObjectID(s) {
				colors = append(colors, s)
			}
			continue
		}

		var obj struct {
			Name      string `json:"name"`
			ColorName string `json:"colorName"`
			Label     string `json:"label"`
			Title     string `json:"title"`
			Value     string `json:"value"`
			ColorID   string `json:"colorId"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			continue
		}
		label := firstNonEmpty(obj.Name, obj.ColorName, obj.Label, obj.Title, obj.Value)
		if label == "" && obj.ColorID != "" && !IsObjectID(obj.ColorID) {
			label = obj.ColorID
		}
		if strings.TrimSpace(label) != "" && !IsObjectID(label) {
			colors = append(colors, label)
		}
	}

	for _, attr := range attributes {
		name := strings.ToLower(attr.Attribute.Name)
		if name != "color" && attr.Attribute.Slug != "color" {
			continue
		}
		value := attr.DisplayValue
		if value == "" {
			value = attr.Value
		}
		if value != "" {
			colors = append(colors, value)
		}
	}

	return colors
}

// normalizeSizes picks the first non-empty size source (availableSizes,
// sizes, size chart) and then appends any sizes carried on inventory
// records.
func normalizeSizes(raw *RawProduct, inventorySizes []string) []string {
	var sizes []string

	switch {
	case len(raw.AvailableSizes) > 0:
		sizes = filterBlank(raw.AvailableSizes)
	case len(raw.Sizes) > 0:
		sizes = filterBlank(raw.Sizes)
	case raw.SizeChart != nil:
		sizes = decodeSizeChart(raw.SizeChart.Sizes)
	}

	return append(sizes, inventorySizes...)
}

// decodeSizeChart accepts size chart entries that are either strings or
// objects with a size field.
func decodeSizeChart(raw json.RawMessage) []string {
	var entries []json.RawMessage
	_ = json.Unmarshal(raw, &entries)

	var sizes []string
	for _, entry := range entries {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			if strings.TrimSpace(s) != "" {
				sizes = append(sizes, s)
			}
			continue
		}

		var obj struct {
			Size string `json:"size"`
		}
		if err := json.Unmarshal(entry, &obj); err == nil && strings.TrimSpace(obj.Size) != "" {
			sizes = append(sizes, obj.Size)
		}
	}
	return sizes
}

func filterBlank(in []string) []string {
	var out []string
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

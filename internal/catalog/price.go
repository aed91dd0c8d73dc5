package catalog

// priceSummary is the canonical pricing triple plus the retained sale price.
type priceSummary struct {
	Price         float64
	OriginalPrice *float64
	SalePrice     *float64
	IsSale        bool
}

// normalizePricing reconciles the flat legacy price fields and the nested
// pricing record into one effective price. The nested record, when present,
// takes precedence entirely. A missing price resolves to 0 rather than an
// error so a partially-populated record still renders.
func normalizePricing(raw *RawProduct) priceSummary {
	out := priceSummary{
		Price:         raw.Price,
		OriginalPrice: raw.OriginalPrice,
		SalePrice:     raw.SalePrice,
	}

	if raw.Pricing != nil {
		base := raw.Pricing.BasePrice
		if base != 0 {
			out.Price = base
		}
		out.OriginalPrice = &base

		// The sale price is only carried into the canonical record when it
		// actually applies, so re-normalizing the output cannot flip isSale.
		out.SalePrice = nil
		if sale := raw.Pricing.SalePrice; sale != nil && *sale != 0 && *sale < base {
			out.IsSale = true
			out.Price = *sale
			out.OriginalPrice = &base
			out.SalePrice = sale
		}
	} else if sale := out.SalePrice; sale != nil && *sale > 0 {
		out.IsSale = true
		if *sale < out.Price {
			original := out.Price
			if out.OriginalPrice != nil && *out.OriginalPrice != 0 {
				original = max(*out.OriginalPrice, out.Price)
			}
			out.OriginalPrice = &original
			out.Price = *sale
		}
	} else if orig := out.OriginalPrice; orig != nil && *orig != 0 && *orig < out.Price {
		// Upstream data occasionally stores price and originalPrice swapped.
		swapped := out.Price
		out.Price = *orig
		out.OriginalPrice = &swapped
	}

	// originalPrice is only meaningful when strictly greater than price.
	if out.OriginalPrice != nil && *out.OriginalPrice <= out.Price {
		out.OriginalPrice = nil
	}

	return out
}

package catalog

// stockSummary is the aggregated availability view of a product.
type stockSummary struct {
	InStock       bool
	StockQuantity int
	Sizes         []string
}

// normalizeInventory reduces per-location inventory records to a single
// availability summary. The quantity is the sum of currentStock minus
// reservedStock across all records and is deliberately not clamped at zero:
// a negative total signals over-reservation. With no inventory records the
// flat fields pass through unchanged.
func normalizeInventory(raw *RawProduct) stockSummary {
	out := stockSummary{StockQuantity: raw.StockQuantity}
	if raw.InStock != nil {
		out.InStock = *raw.InStock
	}

	if len(raw.Inventory) > 0 {
		total := 0
		for _, rec := range raw.Inventory {
			total += rec.CurrentStock - rec.ReservedStock
		}
		out.StockQuantity = total
		out.InStock = total > 0
	}

	for _, rec := range raw.Inventory {
		if rec.Size != "" {
			out.Sizes = append(out.Sizes, rec.Size)
		}
	}

	return out
}

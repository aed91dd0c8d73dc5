package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// LookupError describes one failed enrichment lookup. It is logged at the
// client boundary and never propagated; the normalized product is returned
// with best-effort fields instead.
type LookupError struct {
	Kind string // "brand" or "category"
	ID   string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s lookup %s: %v", e.Kind, e.ID, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// enrich patches unresolved brand and category references on a detail-fetch
// product by querying the lookup endpoints. It only runs at detail
// granularity to bound request fan-out; list fetches skip it entirely. All
// lookups run concurrently and failures are swallowed after logging.
func (c *Client) enrich(ctx context.Context, raw *RawProduct, product *Product) {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failures []*LookupError

	record := func(e *LookupError) {
		mu.Lock()
		failures = append(failures, e)
		mu.Unlock()
	}

	if product.Brand == UnknownBrand && product.BrandID != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			brand, err := c.GetBrand(ctx, product.BrandID)
			if err != nil {
				record(&LookupError{Kind: "brand", ID: product.BrandID, Err: err})
				return
			}
			if brand.Name != "" {
				mu.Lock()
				product.Brand = brand.Name
				mu.Unlock()
			}
		}()
	}

	if ids := unresolvedCategoryIDs(raw, product); len(ids) > 0 {
		names := make([]string, len(ids))
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()
				cat, err := c.GetCategory(ctx, id)
				if err != nil {
					record(&LookupError{Kind: "category", ID: id, Err: err})
					return
				}
				names[i] = cat.Name
			}(i, id)
		}

		wg.Wait()

		resolved := make([]string, 0, len(names))
		for _, name := range names {
			if name != "" {
				resolved = append(resolved, name)
			}
		}
		if len(resolved) > 0 {
			product.Categories = resolved
		}
	} else {
		wg.Wait()
	}

	for _, failure := range failures {
		c.logger.WarnContext(ctx, "enrichment lookup failed",
			slog.String("kind", failure.Kind),
			slog.String("id", failure.ID),
			slog.String("error", failure.Err.Error()),
		)
	}
}

// unresolvedCategoryIDs returns the raw category ids to look up when the
// normalized category list is empty or still made of bare identifiers.
func unresolvedCategoryIDs(raw *RawProduct, product *Product) []string {
	needsResolution := len(product.Categories) == 0
	if !needsResolution {
		allIDs := true
		for _, cat := range product.Categories {
			if !IsObjectID(cat) {
				allIDs = false
				break
			}
		}
		needsResolution = allIDs
	}
	if !needsResolution {
		return nil
	}

	var entries []json.RawMessage
	_ = json.Unmarshal(raw.Categories, &entries)

	var ids []string
	for _, entry := range entries {
		ref := DecodeRef(entry, true)
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	return ids
}

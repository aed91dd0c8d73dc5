package http

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/osamaqaseem39/stationary-gbs/internal/catalog"
)

// parseFilter builds a product filter from the request query string. Known
// keys map onto the structured fields; everything else is carried in Extra,
// where the filter's own allow-list decides what reaches the upstream.
func parseFilter(r *http.Request) catalog.FilterSpec {
	q := r.URL.Query()

	f := catalog.FilterSpec{
		Category:   q.Get("category"),
		Categories: q["categories"],
		Brand:      q.Get("brand"),
		Brands:     q["brands"],

		Colors:        q["colors"],
		ColorFamilies: q["colorFamilies"],
		Occasion:      q.Get("occasion"),
		Occasions:     q["occasions"],
		Season:        q.Get("season"),
		Seasons:       q["seasons"],
		BodyType:      q.Get("bodyType"),
		BodyTypes:     q["bodyTypes"],

		Page:      parseInt(q.Get("page")),
		Limit:     parseInt(q.Get("limit")),
		Search:    q.Get("search"),
		MinPrice:  parseFloat(q.Get("minPrice")),
		MaxPrice:  parseFloat(q.Get("maxPrice")),
		InStock:   parseBool(q.Get("inStock")),
		Status:    q.Get("status"),
		Sizes:     q["sizes"],
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}

	handled := map[string]struct{}{
		"category": {}, "categories": {}, "brand": {}, "brands": {},
		"colors": {}, "colorFamilies": {}, "occasion": {}, "occasions": {},
		"season": {}, "seasons": {}, "bodyType": {}, "bodyTypes": {},
		"page": {}, "limit": {}, "search": {}, "minPrice": {}, "maxPrice": {},
		"inStock": {}, "status": {}, "sizes": {}, "sortBy": {}, "sortOrder": {},
	}
	for key, values := range q {
		if _, ok := handled[key]; ok {
			continue
		}
		if f.Extra == nil {
			f.Extra = make(map[string]any)
		}
		f.Extra[key] = values
	}

	return f
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func parseFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseBool(s string) *bool {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil
	}
	return &v
}

// pagination reads page and limit query parameters for pass-through listings.
func pagination(q url.Values) (page, limit int) {
	return parseInt(q.Get("page")), parseInt(q.Get("limit"))
}

package catalog

import (
	"fmt"
	"net/url"
	"strconv"
)

// allowedFilterKeys is the fixed set of query keys the upstream's validation
// accepts. Anything outside it is dropped before the request is sent.
var allowedFilterKeys = map[string]struct{}{
	"page":             {},
	"limit":            {},
	"search":           {},
	"minPrice":         {},
	"maxPrice":         {},
	"inStock":          {},
	"status":           {},
	"sizes":            {},
	"fabrics":          {},
	"collectionNames":  {},
	"designers":        {},
	"handwork":         {},
	"patterns":         {},
	"sleeveLengths":    {},
	"necklines":        {},
	"lengths":          {},
	"fits":             {},
	"ageGroups":        {},
	"isLimitedEdition": {},
	"isCustomMade":     {},
	"sortBy":           {},
	"sortOrder":        {},
}

// FilterSpec is the structured product filter built from UI state. All
// fields are optional; it is constructed fresh per query and never
// persisted. Extra carries dynamic keys that are individually checked
// against the upstream allow-list.
type FilterSpec struct {
	Category   string
	Categories []string
	Brand      string
	Brands     []string

	Colors        []string
	ColorFamilies []string
	Occasion      string
	Occasions     []string
	Season        string
	Seasons       []string
	BodyType      string
	BodyTypes     []string

	Page      int
	Limit     int
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	InStock   *bool
	Status    string
	Sizes     []string
	SortBy    string
	SortOrder string

	Extra map[string]any
}

// Values translates the filter into the upstream's wire format: singular
// fields merge into their plural counterparts, array values emit one
// parameter occurrence per element, and unrecognized Extra keys are silently
// dropped.
func (f FilterSpec) Values() url.Values {
	params := url.Values{}

	appendMerged(params, "categories", f.Category, f.Categories)
	appendMerged(params, "brands", f.Brand, f.Brands)
	appendMerged(params, "colorFamilies", "", append(f.Colors, f.ColorFamilies...))
	appendMerged(params, "occasions", f.Occasion, f.Occasions)
	appendMerged(params, "seasons", f.Season, f.Seasons)
	appendMerged(params, "bodyTypes", f.BodyType, f.BodyTypes)

	if f.Page > 0 {
		params.Add("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		params.Add("limit", strconv.Itoa(f.Limit))
	}
	if f.Search != "" {
		params.Add("search", f.Search)
	}
	if f.MinPrice != nil {
		params.Add("minPrice", formatNumber(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		params.Add("maxPrice", formatNumber(*f.MaxPrice))
	}
	if f.InStock != nil {
		params.Add("inStock", strconv.FormatBool(*f.InStock))
	}
	if f.Status != "" {
		params.Add("status", f.Status)
	}
	for _, size := range f.Sizes {
		params.Add("sizes", size)
	}
	if f.SortBy != "" {
		params.Add("sortBy", f.SortBy)
	}
	if f.SortOrder != "" {
		params.Add("sortOrder", f.SortOrder)
	}

	for key, value := range f.Extra {
		if _, ok := allowedFilterKeys[key]; !ok {
			continue
		}
		if params.Has(key) {
			continue
		}
		appendValue(params, key, value)
	}

	return params
}

func appendMerged(params url.Values, key, singular string, plural []string) {
	if singular != "" {
		params.Add(key, singular)
	}
	for _, v := range plural {
		params.Add(key, v)
	}
}

func appendValue(params url.Values, key string, value any) {
	switch v := value.(type) {
	case nil:
	case []string:
		for _, item := range v {
			params.Add(key, item)
		}
	case []any:
		for _, item := range v {
			params.Add(key, stringify(item))
		}
	default:
		params.Add(key, stringify(v))
	}
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return formatNumber(v)
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

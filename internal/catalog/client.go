package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/osamaqaseem39/stationary-gbs/pkg/httpclient"
)

// Client talks to the upstream commerce API and runs the normalization layer
// over every product-returning call. Category and brand payloads pass
// through the tolerant envelope decoder; orders, addresses, and auth
// payloads are forwarded as raw JSON.
type Client struct {
	baseURL string
	http    *httpclient.BreakerClient
	logger  *slog.Logger
}

// NewClient creates a catalog client for the given upstream base URL.
func NewClient(baseURL string, hc *httpclient.BreakerClient, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
		logger:  logger,
	}
}

// ListProducts fetches a filtered product page and normalizes every entry.
func (c *Client) ListProducts(ctx context.Context, filter FilterSpec) (*Page[Product], error) {
	return c.productPage(ctx, "/products?"+filter.Values().Encode())
}

// SearchProducts runs a text search. The upstream expects the query under
// the q parameter.
func (c *Client) SearchProducts(ctx context.Context, query string, filter FilterSpec) (*Page[Product], error) {
	params := filter.Values()
	params.Set("q", query)
	return c.productPage(ctx, "/products/search?"+params.Encode())
}

// PublishedProducts fetches the published product listing.
func (c *Client) PublishedProducts(ctx context.Context, filter FilterSpec) (*Page[Product], error) {
	query := filter.Values().Encode()
	path := "/products/published"
	if query != "" {
		path += "?" + query
	}
	return c.productPage(ctx, path)
}

// FeaturedProducts serves featured placements from the published listing.
func (c *Client) FeaturedProducts(ctx context.Context) ([]Product, error) {
	page, err := c.PublishedProducts(ctx, FilterSpec{})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// TrendingProducts serves trending placements from the published listing.
func (c *Client) TrendingProducts(ctx context.Context) ([]Product, error) {
	page, err := c.PublishedProducts(ctx, FilterSpec{})
	if err != nil {
		return nil, err
	}
	return page.Data, nil
}

// ProductsByCategory fetches the product page for one category.
func (c *Client) ProductsByCategory(ctx context.Context, categoryID string, filter FilterSpec) (*Page[Product], error) {
	return c.productPage(ctx, "/products/category/"+url.PathEscape(categoryID)+"?"+filter.Values().Encode())
}

// ProductsByBrand fetches the product page for one brand.
func (c *Client) ProductsByBrand(ctx context.Context, brandID string, filter FilterSpec) (*Page[Product], error) {
	return c.productPage(ctx, "/products/brand/"+url.PathEscape(brandID)+"?"+filter.Values().Encode())
}

// GetProduct fetches and normalizes one product by id, then runs the
// enrichment fallback for unresolved brand and category references.
func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	return c.productDetail(ctx, "/products/"+url.PathEscape(id))
}

// GetProductBySlug fetches and normalizes one product by slug, with the same
// enrichment fallback as GetProduct.
func (c *Client) GetProductBySlug(ctx context.Context, slug string) (*Product, error) {
	return c.productDetail(ctx, "/products/slug/"+url.PathEscape(slug))
}

// FilterOptions fetches the facet summary used to build filter UIs.
func (c *Client) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	var opts FilterOptions
	if err := c.getJSON(ctx, "/products/filter-options", "", &opts); err != nil {
		return nil, err
	}
	return &opts, nil
}

// Categories fetches the active category list, falling back to root
// categories when the active endpoint fails.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	payload, err := c.getRaw(ctx, "/categories/active", "")
	if err != nil {
		c.logger.WarnContext(ctx, "active categories fetch failed, falling back to root",
			slog.String("error", err.Error()),
		)
		return c.RootCategories(ctx)
	}
	return decodeFlexibleList[Category](payload), nil
}

// RootCategories fetches parentless categories.
func (c *Client) RootCategories(ctx context.Context) ([]Category, error) {
	payload, err := c.getRaw(ctx, "/categories/root", "")
	if err != nil {
		return nil, err
	}
	return decodeFlexibleList[Category](payload), nil
}

// GetCategory fetches one category by id.
func (c *Client) GetCategory(ctx context.Context, id string) (*Category, error) {
	var cat Category
	if err := c.getJSON(ctx, "/categories/"+url.PathEscape(id), "", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// GetCategoryBySlug fetches one category by slug.
func (c *Client) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var cat Category
	if err := c.getJSON(ctx, "/categories/slug/"+url.PathEscape(slug), "", &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Brands fetches the active brand list. The upstream paginates this
// endpoint, so a high limit pulls the full set in one call.
func (c *Client) Brands(ctx context.Context) ([]Brand, error) {
	payload, err := c.getRaw(ctx, "/brands/active?page=1&limit=1000", "")
	if err != nil {
		return nil, err
	}
	return decodeFlexibleList[Brand](payload), nil
}

// GetBrand fetches one brand by id.
func (c *Client) GetBrand(ctx context.Context, id string) (*Brand, error) {
	var brand Brand
	if err := c.getJSON(ctx, "/brands/"+url.PathEscape(id), "", &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// GetBrandBySlug fetches one brand by slug.
func (c *Client) GetBrandBySlug(ctx context.Context, slug string) (*Brand, error) {
	var brand Brand
	if err := c.getJSON(ctx, "/brands/slug/"+url.PathEscape(slug), "", &brand); err != nil {
		return nil, err
	}
	return &brand, nil
}

// BrandsByCountry fetches a paginated brand listing filtered by country.
func (c *Client) BrandsByCountry(ctx context.Context, country string, page, limit int) (*Page[Brand], error) {
	params := url.Values{}
	params.Set("country", country)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var out Page[Brand]
	if err := c.getJSON(ctx, "/brands/country/"+url.PathEscape(country)+"?"+params.Encode(), "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CustomerOrders fetches a customer's order history. The payload is passed
// through without normalization.
func (c *Client) CustomerOrders(ctx context.Context, token, customerID string, page, limit int) (json.RawMessage, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	path := "/orders/customer/" + url.PathEscape(customerID)
	if query := params.Encode(); query != "" {
		path += "?" + query
	}
	return c.getRaw(ctx, path, token)
}

// GetOrder fetches one order by id.
func (c *Client) GetOrder(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.getRaw(ctx, "/orders/"+url.PathEscape(id), token)
}

// Addresses fetches all addresses belonging to a user.
func (c *Client) Addresses(ctx context.Context, token, userID string) (json.RawMessage, error) {
	return c.getRaw(ctx, "/addresses/user/"+url.PathEscape(userID), token)
}

// GetAddress fetches one address by id.
func (c *Client) GetAddress(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.getRaw(ctx, "/addresses/"+url.PathEscape(id), token)
}

// CreateAddress forwards a new address to the upstream.
func (c *Client) CreateAddress(ctx context.Context, token string, address json.RawMessage) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPost, "/addresses", token, address)
}

// UpdateAddress forwards a partial address update to the upstream.
func (c *Client) UpdateAddress(ctx context.Context, token, id string, address json.RawMessage) (json.RawMessage, error) {
	return c.send(ctx, http.MethodPatch, "/addresses/"+url.PathEscape(id), token, address)
}

// DeleteAddress removes an address.
func (c *Client) DeleteAddress(ctx context.Context, token, id string) (json.RawMessage, error) {
	return c.send(ctx, http.MethodDelete, "/addresses/"+url.PathEscape(id), token, nil)
}

// Login forwards customer credentials to the upstream and returns its
// response verbatim (it carries the session token).
func (c *Client) Login(ctx context.Context, req LoginRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal login request: %w", err)
	}
	return c.send(ctx, http.MethodPost, "/auth/login", "", body)
}

// Register forwards a new customer registration to the upstream.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (json.RawMessage, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal register request: %w", err)
	}
	return c.send(ctx, http.MethodPost, "/auth/register", "", body)
}

// Profile fetches the authenticated customer profile. The upstream has
// shipped the customer under data.customer, customer, data, and as the bare
// object; all four unwrap to the same Customer.
func (c *Client) Profile(ctx context.Context, token string) (*Customer, error) {
	payload, err := c.getRaw(ctx, "/auth/profile", token)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		Data     json.RawMessage `json:"data"`
		Customer json.RawMessage `json:"customer"`
	}
	_ = json.Unmarshal(payload, &envelope)

	candidate := payload
	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		candidate = envelope.Data

		var nested struct {
			Customer json.RawMessage `json:"customer"`
		}
		if json.Unmarshal(envelope.Data, &nested) == nil && len(nested.Customer) > 0 && !bytes.Equal(nested.Customer, []byte("null")) {
			candidate = nested.Customer
		}
	} else if len(envelope.Customer) > 0 && !bytes.Equal(envelope.Customer, []byte("null")) {
		candidate = envelope.Customer
	}

	var customer Customer
	if err := json.Unmarshal(candidate, &customer); err != nil {
		return nil, fmt.Errorf("decode customer profile: %w", err)
	}
	return &customer, nil
}

func (c *Client) productPage(ctx context.Context, path string) (*Page[Product], error) {
	var rawPage Page[RawProduct]
	if err := c.getJSON(ctx, path, "", &rawPage); err != nil {
		return nil, err
	}

	out := Page[Product]{
		Data:       make([]Product, 0, len(rawPage.Data)),
		Total:      rawPage.Total,
		Page:       rawPage.Page,
		Limit:      rawPage.Limit,
		TotalPages: rawPage.TotalPages,
		HasNext:    rawPage.HasNext,
		HasPrev:    rawPage.HasPrev,
	}
	for _, raw := range rawPage.Data {
		out.Data = append(out.Data, NormalizeProduct(raw))
	}
	return &out, nil
}

func (c *Client) productDetail(ctx context.Context, path string) (*Product, error) {
	var raw RawProduct
	if err := c.getJSON(ctx, path, "", &raw); err != nil {
		return nil, err
	}

	product := NormalizeProduct(raw)
	c.enrich(ctx, &raw, &product)
	return &product, nil
}

func (c *Client) getJSON(ctx context.Context, path, token string, out any) error {
	payload, err := c.getRaw(ctx, path, token)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) getRaw(ctx context.Context, path, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.execute(ctx, req, path)
}

func (c *Client) send(ctx context.Context, method, path, token string, body []byte) (json.RawMessage, error) {
	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return c.execute(ctx, req, path)
}

func (c *Client) execute(ctx context.Context, req *http.Request, path string) (json.RawMessage, error) {
	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("upstream request %s: %w", path, err)
	}

	if resp.StatusCode >= 400 {
		return nil, httpclient.ParseUpstreamError(resp, path)
	}

	defer func() { _ = resp.Body.Close() }()
	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	return payload, nil
}

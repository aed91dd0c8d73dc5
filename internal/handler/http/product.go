package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osamaqaseem39/stationary-gbs/internal/catalog"
	"github.com/osamaqaseem39/stationary-gbs/internal/event"
	"github.com/osamaqaseem39/stationary-gbs/pkg/httputil"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	catalog *catalog.Client
	events  *event.Producer
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(client *catalog.Client, events *event.Producer, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		catalog: client,
		events:  events,
		logger:  logger,
	}
}

// List handles GET /api/v1/products
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListProducts(r.Context(), parseFilter(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// Search handles GET /api/v1/products/search?q=...
func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "q query parameter is required"},
		})
		return
	}

	page, err := h.catalog.SearchProducts(r.Context(), query, parseFilter(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.events.SearchPerformed(r.Context(), query, len(page.Data))
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// Published handles GET /api/v1/products/published
func (h *ProductHandler) Published(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.PublishedProducts(r.Context(), parseFilter(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// Featured handles GET /api/v1/products/featured
func (h *ProductHandler) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.FeaturedProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// Trending handles GET /api/v1/products/trending
func (h *ProductHandler) Trending(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.TrendingProducts(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: products})
}

// FilterOptions handles GET /api/v1/products/filter-options
func (h *ProductHandler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.catalog.FilterOptions(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: opts})
}

// ByCategory handles GET /api/v1/products/category/{categoryId}
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")
	page, err := h.catalog.ProductsByCategory(r.Context(), categoryID, parseFilter(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// ByBrand handles GET /api/v1/products/brand/{brandId}
func (h *ProductHandler) ByBrand(w http.ResponseWriter, r *http.Request) {
	brandID := chi.URLParam(r, "brandId")
	page, err := h.catalog.ProductsByBrand(r.Context(), brandID, parseFilter(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: page})
}

// GetBySlug handles GET /api/v1/products/slug/{slug}
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	product, err := h.catalog.GetProductBySlug(r.Context(), slug)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.events.ProductViewed(r.Context(), product.ID, product.Slug, product.Brand)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// Get handles GET /api/v1/products/{id}
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.events.ProductViewed(r.Context(), product.ID, product.Slug, product.Brand)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

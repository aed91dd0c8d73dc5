package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osamaqaseem39/stationary-gbs/internal/catalog"
	"github.com/osamaqaseem39/stationary-gbs/pkg/httputil"
)

// BrandHandler handles HTTP requests for brand endpoints.
type BrandHandler struct {
	catalog *catalog.Client
	logger  *slog.Logger
}

// NewBrandHandler creates a new brand HTTP handler.
func NewBrandHandler(client *catalog.Client, logger *slog.Logger) *BrandHandler {
	return &BrandHandler{
		catalog: client,
		logger:  logger,
	}
}

// List handles GET /api/v1/brands
func (h *BrandHandler) List(w http.ResponseWriter, r *http.Request) {
	brands, err := h.catalog.Brands(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// ByCountry handles GET /api/v1/brands/country/{country}
func (h *BrandHandler) ByCountry(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r.URL.Query())
	brands, err := h.catalog.BrandsByCountry(r.Context(), chi.URLParam(r, "country"), page, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brands})
}

// GetBySlug handles GET /api/v1/brands/slug/{slug}
func (h *BrandHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	brand, err := h.catalog.GetBrandBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brand})
}

// Get handles GET /api/v1/brands/{id}
func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	brand, err := h.catalog.GetBrand(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: brand})
}

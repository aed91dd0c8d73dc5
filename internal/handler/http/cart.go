package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osamaqaseem39/stationary-gbs/internal/event"
	"github.com/osamaqaseem39/stationary-gbs/internal/session"
	"github.com/osamaqaseem39/stationary-gbs/pkg/httputil"
	"github.com/osamaqaseem39/stationary-gbs/pkg/validator"
)

// CartHandler handles HTTP requests for cart endpoints. Carts are keyed by
// the session ID injected by SessionFromHeader.
type CartHandler struct {
	carts  *session.CartStore
	events *event.Producer
	logger *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(carts *session.CartStore, events *event.Producer, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		events: events,
		logger: logger,
	}
}

// --- Request DTOs ---

// AddItemRequest is the JSON request body for adding an item to the cart.
type AddItemRequest struct {
	ProductID   string  `json:"productId" validate:"required"`
	VariationID string  `json:"variationId"`
	Size        string  `json:"size"`
	Color       string  `json:"color"`
	Name        string  `json:"name" validate:"required,min=1,max=500"`
	Price       float64 `json:"price" validate:"gte=0"`
	Image       string  `json:"image"`
	Quantity    int     `json:"quantity" validate:"gte=0"`
}

// UpdateQuantityRequest is the JSON request body for updating an item's quantity.
type UpdateQuantityRequest struct {
	VariationID string `json:"variationId"`
	Quantity    int    `json:"quantity" validate:"gte=0"`
}

// Get handles GET /api/v1/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	cart, err := h.carts.Get(r.Context(), sid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	var req AddItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.Add(r.Context(), sid, session.CartItem{
		ProductID:   req.ProductID,
		VariationID: req.VariationID,
		Size:        req.Size,
		Color:       req.Color,
		Name:        req.Name,
		Price:       req.Price,
		Image:       req.Image,
		Quantity:    req.Quantity,
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.events.CartUpdated(r.Context(), sid, cart)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())
	productID := chi.URLParam(r, "productId")

	var req UpdateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.UpdateQuantity(r.Context(), sid, productID, req.VariationID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.events.CartUpdated(r.Context(), sid, cart)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())
	productID := chi.URLParam(r, "productId")
	variationID := r.URL.Query().Get("variationId")

	cart, err := h.carts.Remove(r.Context(), sid, productID, variationID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.events.CartUpdated(r.Context(), sid, cart)
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// Clear handles DELETE /api/v1/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	if err := h.carts.Clear(r.Context(), sid); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	h.events.CartUpdated(r.Context(), sid, session.Cart{Items: []session.CartItem{}})
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "cleared"}})
}

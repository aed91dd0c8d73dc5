package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osamaqaseem39/stationary-gbs/internal/catalog"
	"github.com/osamaqaseem39/stationary-gbs/internal/session"
	"github.com/osamaqaseem39/stationary-gbs/pkg/httputil"
	"github.com/osamaqaseem39/stationary-gbs/pkg/middleware"
	"github.com/osamaqaseem39/stationary-gbs/pkg/validator"
)

// AccountHandler handles authentication, profile, order, and address
// endpoints. Auth and order payloads pass through to the upstream; the
// handler's own state is the per-session sign-in record.
type AccountHandler struct {
	catalog   *catalog.Client
	customers *session.CustomerStore
	logger    *slog.Logger
}

// NewAccountHandler creates a new account HTTP handler.
func NewAccountHandler(client *catalog.Client, customers *session.CustomerStore, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		catalog:   client,
		customers: customers,
		logger:    logger,
	}
}

// Login handles POST /api/v1/account/login. The upstream response is
// returned verbatim; when it carries a token the sign-in is also recorded
// against the storefront session.
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req catalog.LoginRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	payload, err := h.catalog.Login(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if sid, ok := sessionIDFromContext(r.Context()); ok {
		if token, customer := extractLogin(payload); token != "" {
			if err := h.customers.SignIn(r.Context(), sid, token, customer); err != nil {
				h.logger.WarnContext(r.Context(), "record sign-in failed",
					slog.String("error", err.Error()),
				)
			}
		}
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}

// Register handles POST /api/v1/account/register
func (h *AccountHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req catalog.RegisterRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	payload, err := h.catalog.Register(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: payload})
}

// Logout handles POST /api/v1/account/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	if err := h.customers.SignOut(r.Context(), sid); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "signed out"}})
}

// Session handles GET /api/v1/account/session. It revalidates the recorded
// sign-in against the upstream; an expired token clears the session and
// reports an anonymous visitor.
func (h *AccountHandler) Session(w http.ResponseWriter, r *http.Request) {
	sid, _ := sessionIDFromContext(r.Context())

	login, err := h.customers.Refresh(r.Context(), sid)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if login == nil {
		httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{"authenticated": false}})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]any{
		"authenticated": true,
		"customer":      login.Customer,
	}})
}

// Profile handles GET /api/v1/account/profile
func (h *AccountHandler) Profile(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	customer, err := h.catalog.Profile(r.Context(), token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: customer})
}

// Orders handles GET /api/v1/account/orders
func (h *AccountHandler) Orders(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	customerID, ok := h.customerID(r)
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "customer identity is required"},
		})
		return
	}

	page, limit := pagination(r.URL.Query())
	payload, err := h.catalog.CustomerOrders(r.Context(), token, customerID, page, limit)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}

// GetOrder handles GET /api/v1/account/orders/{id}
func (h *AccountHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	payload, err := h.catalog.GetOrder(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}

// Addresses handles GET /api/v1/account/addresses
func (h *AccountHandler) Addresses(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	customerID, ok := h.customerID(r)
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "customer identity is required"},
		})
		return
	}

	payload, err := h.catalog.Addresses(r.Context(), token, customerID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}

// GetAddress handles GET /api/v1/account/addresses/{id}
func (h *AccountHandler) GetAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	payload, err := h.catalog.GetAddress(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}

// CreateAddress handles POST /api/v1/account/addresses
func (h *AccountHandler) CreateAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	payload, err := h.catalog.CreateAddress(r.Context(), token, body)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: payload})
}

// UpdateAddress handles PATCH /api/v1/account/addresses/{id}
func (h *AccountHandler) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	body, err := readBody(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	payload, err := h.catalog.UpdateAddress(r.Context(), token, chi.URLParam(r, "id"), body)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}

// DeleteAddress handles DELETE /api/v1/account/addresses/{id}
func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromContext(r.Context())

	payload, err := h.catalog.DeleteAddress(r.Context(), token, chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: payload})
}

// customerID resolves the customer identity for order and address listings:
// the X-Customer-ID header wins, then the session's recorded sign-in.
func (h *AccountHandler) customerID(r *http.Request) (string, bool) {
	if id := middleware.CustomerIDFromContext(r.Context()); id != "" {
		return id, true
	}

	sid, ok := sessionIDFromContext(r.Context())
	if !ok {
		return "", false
	}
	login, err := h.customers.Get(r.Context(), sid)
	if err != nil || login == nil || login.Customer == nil {
		return "", false
	}
	return login.Customer.ID, true
}

// extractLogin pulls the session token and customer out of an upstream auth
// response. The token has shipped at the top level and under data; the
// customer under customer, user, and data.customer.
func extractLogin(payload json.RawMessage) (string, *catalog.Customer) {
	var envelope struct {
		Token    string          `json:"token"`
		Data     json.RawMessage `json:"data"`
		Customer json.RawMessage `json:"customer"`
		User     json.RawMessage `json:"user"`
	}
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return "", nil
	}

	token := envelope.Token
	customerRaw := envelope.Customer
	if len(customerRaw) == 0 || bytes.Equal(customerRaw, []byte("null")) {
		customerRaw = envelope.User
	}

	if len(envelope.Data) > 0 && !bytes.Equal(envelope.Data, []byte("null")) {
		var nested struct {
			Token    string          `json:"token"`
			Customer json.RawMessage `json:"customer"`
			User     json.RawMessage `json:"user"`
		}
		if json.Unmarshal(envelope.Data, &nested) == nil {
			if token == "" {
				token = nested.Token
			}
			if len(customerRaw) == 0 || bytes.Equal(customerRaw, []byte("null")) {
				customerRaw = nested.Customer
			}
			if len(customerRaw) == 0 || bytes.Equal(customerRaw, []byte("null")) {
				customerRaw = nested.User
			}
		}
	}

	if token == "" {
		return "", nil
	}

	var customer *catalog.Customer
	if len(customerRaw) > 0 && !bytes.Equal(customerRaw, []byte("null")) {
		var c catalog.Customer
		if json.Unmarshal(customerRaw, &c) == nil {
			customer = &c
		}
	}
	return token, customer
}

func readBody(r *http.Request) (json.RawMessage, error) {
	defer func() { _ = r.Body.Close() }()
	return io.ReadAll(r.Body)
}

package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// accountUpstream fakes the upstream auth, order, and address endpoints.
func accountUpstream(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/auth/login" && r.Method == http.MethodPost:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"token":    "tok-1",
					"customer": map[string]any{"_id": "c1", "email": "ada@example.com", "firstName": "Ada"},
				},
			})
		case r.URL.Path == "/auth/profile":
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"data": map[string]any{
					"customer": map[string]any{"_id": "c1", "firstName": "Ada"},
				},
			})
		case strings.HasPrefix(r.URL.Path, "/orders/customer/"):
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			_ = json.NewEncoder(w).Encode(map[string]any{"data": []any{}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestAccount_LoginRecordsSession(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login",
		strings.NewReader(`{"email":"ada@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "sess-1")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The recorded sign-in is visible through the session endpoint, which
	// revalidates the token against the upstream profile.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/account/session", nil)
	req.Header.Set(SessionHeader, "sess-1")

	rec = doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.Nil(t, resp.Error)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var state struct {
		Authenticated bool `json:"authenticated"`
		Customer      struct {
			FirstName string `json:"firstName"`
		} `json:"customer"`
	}
	require.NoError(t, json.Unmarshal(payload, &state))
	assert.True(t, state.Authenticated)
	assert.Equal(t, "Ada", state.Customer.FirstName)
}

func TestAccount_LoginValidation(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login",
		strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestAccount_SessionWithoutSignInIsAnonymous(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/session", nil)
	req.Header.Set(SessionHeader, "sess-9")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var state struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(payload, &state))
	assert.False(t, state.Authenticated)
}

func TestAccount_LogoutClearsSession(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/account/login",
		strings.NewReader(`{"email":"ada@example.com","password":"secret"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(SessionHeader, "sess-1")
	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/account/logout", nil)
	req.Header.Set(SessionHeader, "sess-1")
	rec = doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/account/session", nil)
	req.Header.Set(SessionHeader, "sess-1")
	rec = doRequest(router, req)

	resp := decodeEnvelope(t, rec)
	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var state struct {
		Authenticated bool `json:"authenticated"`
	}
	require.NoError(t, json.Unmarshal(payload, &state))
	assert.False(t, state.Authenticated)
}

func TestAccount_ProfileRequiresToken(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	rec := doRequest(router, httptest.NewRequest(http.MethodGet, "/api/v1/account/profile", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAccount_Profile(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/profile", nil)
	req.Header.Set("Authorization", "Bearer tok-1")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.Nil(t, resp.Error)

	payload, err := json.Marshal(resp.Data)
	require.NoError(t, err)

	var customer struct {
		ID        string `json:"_id"`
		FirstName string `json:"firstName"`
	}
	require.NoError(t, json.Unmarshal(payload, &customer))
	assert.Equal(t, "c1", customer.ID)
	assert.Equal(t, "Ada", customer.FirstName)
}

func TestAccount_OrdersUseHeaderIdentity(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/orders", nil)
	req.Header.Set("Authorization", "Bearer tok-1")
	req.Header.Set("X-Customer-ID", "c1")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAccount_OrdersWithoutIdentityRejected(t *testing.T) {
	router := newTestRouter(t, accountUpstream(t))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/account/orders", nil)
	req.Header.Set("Authorization", "Bearer tok-1")

	rec := doRequest(router, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_INPUT", resp.Error.Code)
}

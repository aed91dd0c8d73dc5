package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken_ExtractsToken(t *testing.T) {
	var gotToken, gotCustomer string
	handler := BearerToken()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = TokenFromContext(r.Context())
		gotCustomer = CustomerIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Bearer abc123")
	req.Header.Set("X-Customer-ID", "cust-42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc123", gotToken)
	assert.Equal(t, "cust-42", gotCustomer)
}

func TestBearerToken_MalformedHeaderIgnored(t *testing.T) {
	var gotToken string
	handler := BearerToken()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = TokenFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Empty(t, gotToken)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireToken_RejectsMissingToken(t *testing.T) {
	chain := BearerToken()(RequireToken()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()

	chain.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestRequireToken_AllowsValidToken(t *testing.T) {
	chain := BearerToken()(RequireToken()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	req.Header.Set("Authorization", "bearer tok")
	rec := httptest.NewRecorder()

	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package httpclient

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/osamaqaseem39/stationary-gbs/pkg/errors"
)

func upstreamResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestParseUpstreamError_NestedEnvelope(t *testing.T) {
	resp := upstreamResponse(http.StatusNotFound, `{"error":{"code":"NOT_FOUND","message":"no such product"}}`)

	err := ParseUpstreamError(resp, "products")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "no such product")
}

func TestParseUpstreamError_FlatMessage(t *testing.T) {
	resp := upstreamResponse(http.StatusBadRequest, `{"message":"limit must be positive"}`)

	err := ParseUpstreamError(resp, "products")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "limit must be positive")
}

func TestParseUpstreamError_UnstructuredBody(t *testing.T) {
	resp := upstreamResponse(http.StatusServiceUnavailable, "upstream is down")

	err := ParseUpstreamError(resp, "brands")
	assert.ErrorIs(t, err, apperrors.ErrUpstreamUnavail)
}

func TestParseUpstreamError_ServerError(t *testing.T) {
	resp := upstreamResponse(http.StatusInternalServerError, `{"message":"oops"}`)

	err := ParseUpstreamError(resp, "orders")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestParseUpstreamError_UnmappedStatusKeepsCode(t *testing.T) {
	resp := upstreamResponse(http.StatusTeapot, `{"error":{"code":"TEAPOT","message":"short and stout"}}`)

	err := ParseUpstreamError(resp, "categories")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "TEAPOT", appErr.Code)
	assert.Equal(t, http.StatusTeapot, appErr.Status)
}

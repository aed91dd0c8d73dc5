package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_UnwrapsToSentinel(t *testing.T) {
	err := NotFound("product", "abc")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "product abc not found")
}

func TestHTTPStatus_AppError(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("brand", "x")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(InvalidInput("bad page")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized("no token")))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(Forbidden("nope")))
	assert.Equal(t, http.StatusConflict, HTTPStatus(Conflict("dup")))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(UpstreamUnavailable("down")))
}

func TestHTTPStatus_WrappedSentinel(t *testing.T) {
	err := fmt.Errorf("fetch product: %w", ErrNotFound)
	assert.Equal(t, http.StatusNotFound, HTTPStatus(err))
}

func TestHTTPStatus_UnknownError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestWrap_PreservesChain(t *testing.T) {
	err := Wrap(ErrConflict, "saving cart")
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "saving cart")
}

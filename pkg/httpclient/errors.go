package httpclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/osamaqaseem39/stationary-gbs/pkg/errors"
)

// upstreamErrorBody covers the error shapes the commerce API has been
// observed to return: a nested {error:{code,message}} envelope or a flat
// {message} (sometimes {error: "..."} with a bare string, which the nested
// decode simply misses and the flat decode picks up via Message).
type upstreamErrorBody struct {
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

// ParseUpstreamError reads the body of a non-2xx upstream response and
// converts it to an AppError that preserves the status semantics. The
// response body is fully consumed and closed. Callers should only invoke
// this for non-2xx responses.
func ParseUpstreamError(resp *http.Response, endpoint string) error {
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB cap
	if err != nil {
		return fmt.Errorf("upstream %s returned status %d (read body: %w)", endpoint, resp.StatusCode, err)
	}

	var body upstreamErrorBody
	code, message := "", ""
	if json.Unmarshal(raw, &body) == nil {
		if body.Error != nil {
			code, message = body.Error.Code, body.Error.Message
		} else if body.Message != "" {
			message = body.Message
		}
	}
	if message == "" {
		message = string(raw)
	}

	return mapUpstreamError(resp.StatusCode, code, message, endpoint)
}

func mapUpstreamError(status int, code, message, endpoint string) error {
	qualified := fmt.Sprintf("%s: %s", endpoint, message)

	switch {
	case status == http.StatusNotFound:
		return apperrors.NotFound(endpoint, message)
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(qualified)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(qualified)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(qualified)
	case status == http.StatusConflict:
		return apperrors.Conflict(qualified)
	case status == http.StatusServiceUnavailable:
		return apperrors.UpstreamUnavailable(qualified)
	case status >= 500:
		return fmt.Errorf("upstream %s server error (%d/%s): %s", endpoint, status, code, message)
	default:
		if code == "" {
			code = "UPSTREAM_ERROR"
		}
		return &apperrors.AppError{
			Code:    code,
			Message: qualified,
			Status:  status,
		}
	}
}

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/osamaqaseem39/stationary-gbs/pkg/logger"
)

// RequestLogger returns middleware that builds a request-scoped logger enriched
// with correlation_id, customer_id, trace_id, and span_id, then stores it in
// context via logger.NewContext. Downstream handlers retrieve it with
// logger.FromContext(ctx).
//
// This middleware should be mounted AFTER RequestLogging (which sets
// correlation_id) and Tracing (which sets the OpenTelemetry span context).
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			// Pick up customer_id from the BearerToken middleware or the
			// X-Customer-ID header directly.
			customerID := CustomerIDFromContext(ctx)
			if customerID == "" {
				customerID = r.Header.Get("X-Customer-ID")
			}
			if customerID != "" {
				ctx = logger.WithCustomerID(ctx, customerID)
			}

			// Build enriched logger with all available context fields.
			enriched := logger.WithContext(ctx, base)

			// Store the enriched logger in context for downstream handlers.
			ctx = logger.NewContext(ctx, enriched)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

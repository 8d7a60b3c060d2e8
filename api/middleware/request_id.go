package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/stockdeck/dashboard/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID tags every dashboard request with an id, echoed on the response
// and attached to the request-scoped logger. An inbound id is honored only if
// it parses as a UUID; anything else is replaced rather than propagated into
// the logs.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := r.Header.Get(requestIDHeader)
			if _, err := uuid.Parse(reqID); err != nil {
				reqID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, reqID)

			ctx := r.Context()
			if logg != nil {
				ctx = logg.WithRequestID(ctx, reqID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

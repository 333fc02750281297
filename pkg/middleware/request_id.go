package middleware

import (
	"net/http"

	"eventora-client/pkg/utils"
)

// RequestID tags every request with a correlation ID, echoed back in the
// X-Request-Id header and attached to the context for log lines.
func RequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get("X-Request-Id")
			if id == "" {
				id = utils.GenerateUUIDString()
			}

			w.Header().Set("X-Request-Id", id)
			ctx := utils.SetRequestIDContext(r.Context(), id)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

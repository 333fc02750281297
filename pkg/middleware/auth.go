package middleware

import (
	"net/http"

	"eventora-client/pkg/utils"

	"go.uber.org/zap"
)

// SessionChecker is the slice of the session service the guard needs.
type SessionChecker interface {
	Credential() (string, bool)
}

// RequireSession guards routes that need a signed-in user. The stored
// credential is attached to the request context; the backend still
// verifies it on every proxied call, this guard only saves a doomed
// round-trip.
func RequireSession(session SessionChecker, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := session.Credential()
			if !ok {
				logger.Warn("Unauthenticated request to protected route",
					zap.String("path", r.URL.Path),
					zap.String("method", r.Method))
				utils.ResponseUnauthorized(w, "Please log in to continue")
				return
			}

			ctx := utils.SetTokenContext(r.Context(), token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

package middleware

import (
	"net/http"

	"github.com/mealwise/core/internal/infrastructure/security"
	"github.com/mealwise/core/pkg/errors"
	"go.uber.org/zap"
)

// Authenticate requires a valid bearer token and stores its principal in
// the request context
func Authenticate(verifier *security.TokenVerifier, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := security.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				WriteError(w, r, errors.NewUnauthorizedError("Authorization header required"))
				return
			}

			principal, err := verifier.Verify(token)
			if err != nil {
				logger.Debug("Token rejected",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.Error(err),
				)
				WriteError(w, r, errors.NewUnauthorizedError("Invalid or expired token"))
				return
			}

			setRequestUser(r.Context(), principal.UserID)
			ctx := security.WithPrincipal(r.Context(), principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only principals carrying role. Must run after Authenticate.
func RequireRole(role string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := security.PrincipalFrom(r.Context())
			if !ok {
				WriteError(w, r, errors.NewUnauthorizedError(""))
				return
			}
			if !principal.HasRole(role) {
				WriteError(w, r, errors.NewInsufficientPermissionsError("access this resource"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	jwttoken "pratico/internal/jwt_token"
	dErrors "pratico/pkg/domain-errors"
	"pratico/pkg/platform/httputil"
)

// TokenValidator validates a bearer token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*jwttoken.Claims, error)
}

// RequireAdmin guards management endpoints behind a bearer token carrying
// the admin role.
func RequireAdmin(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing bearer token"))
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				httputil.WriteError(w, err)
				return
			}
			if claims.Role != "admin" {
				logger.WarnContext(r.Context(), "token without admin role rejected",
					"subject", claims.Subject,
					"role", claims.Role,
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "admin role required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

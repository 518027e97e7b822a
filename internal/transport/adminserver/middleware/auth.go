package middleware

import (
	"net/http"
	"strings"

	"github.com/soltiHQ/gridstore/internal/auth/jwt"
	"github.com/soltiHQ/gridstore/internal/transportctx"
)

// Auth rejects requests lacking a valid "Bearer <token>" Authorization
// header, verified against verifier. A nil verifier fails every request
// closed, matching the teacher's "no verifier configured means no access"
// convention for auth-gated routes.
func Auth(verifier *jwt.Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verifier == nil {
				http.Error(w, "admin auth not configured", http.StatusForbidden)
				return
			}

			raw := r.Header.Get("Authorization")
			const prefix = "Bearer "
			if !strings.HasPrefix(raw, prefix) {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			claims, err := verifier.Verify(strings.TrimPrefix(raw, prefix))
			if err != nil {
				http.Error(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(transportctx.WithAdmin(r.Context(), claims.Subject)))
		})
	}
}

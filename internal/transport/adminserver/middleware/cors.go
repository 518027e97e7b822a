package middleware

import (
	"net/http"
	"strconv"
	"time"
)

// corsDefaultMaxAge mirrors the teacher's preflight cache default.
const corsDefaultMaxAge = 12 * time.Hour

// CORS returns middleware handling Cross-Origin Resource Sharing for the
// admin JSON API. allowOrigins of ["*"] allows every origin; an empty list
// disables CORS headers entirely.
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	origins := make(map[string]struct{}, len(allowOrigins))
	allowAll := false
	for _, o := range allowOrigins {
		if o == "*" {
			allowAll = true
			continue
		}
		origins[o] = struct{}{}
	}
	isAllowed := func(origin string) bool {
		if origin == "" {
			return false
		}
		if allowAll {
			return true
		}
		_, ok := origins[origin]
		return ok
	}

	const (
		allowMethods = "GET, PUT, DELETE, OPTIONS"
		allowHeaders = "Authorization, Content-Type, X-Request-Id"
	)
	maxAge := strconv.FormatInt(int64(corsDefaultMaxAge.Seconds()), 10)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			h := w.Header()
			if origin == "" || !isAllowed(origin) {
				if r.Method == http.MethodOptions && origin != "" {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if allowAll {
				h.Set("Access-Control-Allow-Origin", "*")
			} else {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Add("Vary", "Origin")
			}

			if r.Method == http.MethodOptions {
				h.Set("Access-Control-Allow-Methods", allowMethods)
				h.Set("Access-Control-Allow-Headers", allowHeaders)
				h.Set("Access-Control-Max-Age", maxAge)
				h.Add("Vary", "Access-Control-Request-Method")
				h.Add("Vary", "Access-Control-Request-Headers")
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

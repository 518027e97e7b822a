// Package middleware is the adminserver's HTTP middleware chain (request id
// -> logger -> recovery -> CORS -> auth), grounded on the teacher's
// internal/transport/http/middleware package.
package middleware

import (
	"net/http"
	"strings"

	"github.com/segmentio/ksuid"

	"github.com/soltiHQ/gridstore/internal/transportctx"
)

// RequestIDHeader is the header a caller-supplied request id is read from
// and echoed back on.
const RequestIDHeader = "X-Request-Id"

// RequestID ensures a request id exists in context and echoes it back,
// trusting an incoming header when present.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := normalizeRequestID(r.Header.Get(RequestIDHeader))
		if rid == "" {
			rid = ksuid.New().String()
		}
		w.Header().Set(RequestIDHeader, rid)
		next.ServeHTTP(w, r.WithContext(transportctx.WithRequestID(r.Context(), rid)))
	})
}

func normalizeRequestID(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 128 {
		return ""
	}
	return s
}

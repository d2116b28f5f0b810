package middleware

import (
	"net/http"

	pnet "transcriba/internal/platform/net"
)

// RequestScope copies the request id assigned by RequestID onto the logger
// context so logger.C tags every event downstream with it
// place after RequestID in the stack
func RequestScope() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if reqID := pnet.RequestID(r.Context()); reqID != "" {
				r = r.WithContext(pnet.WithRequest(r.Context(), reqID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	pnet "transcriba/internal/platform/net"
	"transcriba/internal/platform/net/middleware"
)

func TestRequestScope_PropagatesRequestID(t *testing.T) {
	var seen string
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = pnet.RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	stack := middleware.RequestID()(middleware.RequestScope()(h))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	stack.ServeHTTP(rec, req)

	if seen == "" {
		t.Fatalf("expected a request id on the handler context")
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status %d want %d", rec.Code, http.StatusNoContent)
	}
}

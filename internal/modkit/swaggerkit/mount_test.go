package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	phttp "transcriba/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func newRouter() phttp.Router { return phttp.AdaptChi(chi.NewRouter()) }

func TestMount_Disabled(t *testing.T) {
	r := newRouter()
	Mount(r, false)

	req := httptest.NewRequest("GET", "/api/docs/doc.json", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled mount should 404, got %d", rec.Code)
	}
}

func TestMount_ServesDocJSON(t *testing.T) {
	r := newRouter()
	Mount(r, true)

	req := httptest.NewRequest("GET", "/api/docs/doc.json", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json status = %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not valid JSON: %v", err)
	}
	if v, ok := doc["openapi"].(string); !ok || v == "" {
		t.Fatalf("doc.json missing openapi version: %v", doc)
	}
}

func TestMount_RedirectsBareDocsPath(t *testing.T) {
	r := newRouter()
	Mount(r, true)

	req := httptest.NewRequest("GET", "/api/docs", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/api/docs/" {
		t.Fatalf("redirect location = %q", loc)
	}
}

func TestDocReaderSeam(t *testing.T) {
	orig := docReader
	defer func() { docReader = orig }()
	docReader = func() string { return `{"openapi":"3.0.3","paths":{"/x":{}}}` }

	r := newRouter()
	Mount(r, true)

	req := httptest.NewRequest("GET", "/api/docs/doc.json", nil)
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, req)

	if body := rec.Body.String(); body != `{"openapi":"3.0.3","paths":{"/x":{}}}` {
		t.Fatalf("seam body not served: %s", body)
	}
}

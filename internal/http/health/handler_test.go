package health

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthHandler(t *testing.T) {
	resp := httptest.NewRecorder()
	Handler("1.2.3").ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}

	var h Response
	if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if h.Status != "healthy" {
		t.Fatalf("expected status 'healthy', got %s", h.Status)
	}
	if h.Version != "1.2.3" {
		t.Fatalf("expected version 1.2.3, got %s", h.Version)
	}
}

func TestHealthHandlerOmitsEmptyVersion(t *testing.T) {
	resp := httptest.NewRecorder()
	Handler("").ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if got := resp.Body.String(); got != `{"status":"healthy"}` {
		t.Fatalf("unexpected body %s", got)
	}
}

func TestHealthHandlerHead(t *testing.T) {
	resp := httptest.NewRecorder()
	Handler("dev").ServeHTTP(resp, httptest.NewRequest(http.MethodHead, "/health", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if resp.Body.Len() != 0 {
		t.Fatalf("expected empty body for HEAD, got %q", resp.Body.String())
	}
}

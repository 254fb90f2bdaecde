package world

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	applog "github.com/janisto/world-service/internal/platform/logging"
	appmiddleware "github.com/janisto/world-service/internal/platform/middleware"
	"github.com/janisto/world-service/internal/platform/respond"
)

func newTestRouter() chi.Router {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(""),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("WorldTest", "test"))
	Register(api)
	return router
}

func assertGreeting(t *testing.T, resp *httptest.ResponseRecorder) {
	t.Helper()
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if body := resp.Body.String(); body != Greeting {
		t.Fatalf("expected body %q, got %q", Greeting, body)
	}
	if ct := resp.Header().Get("Content-Type"); ct != contentType {
		t.Fatalf("expected %s, got %q", contentType, ct)
	}
}

func TestGetWorld(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/world", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "world-get")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assertGreeting(t, resp)
	if resp.Body.Len() != len("World") {
		t.Fatalf("expected %d bytes, got %d", len("World"), resp.Body.Len())
	}
}

func TestGetWorldIsDeterministic(t *testing.T) {
	router := newTestRouter()

	for range 5 {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/world", nil))
		assertGreeting(t, resp)
	}
}

func TestGetWorldIgnoresQueryAndHeaders(t *testing.T) {
	tests := []struct {
		name    string
		target  string
		headers map[string]string
	}{
		{name: "query string", target: "/world?name=Mars&lang=fi"},
		{name: "empty query value", target: "/world?x="},
		{name: "accept cbor", target: "/world", headers: map[string]string{"Accept": "application/cbor"}},
		{name: "accept json", target: "/world", headers: map[string]string{"Accept": "application/json"}},
		{name: "accept wildcard", target: "/world", headers: map[string]string{"Accept": "*/*"}},
		{name: "accept language", target: "/world", headers: map[string]string{"Accept-Language": "fi-FI"}},
		{name: "custom header", target: "/world", headers: map[string]string{"X-Greeting": "Hello"}},
		{
			name:    "trace header",
			target:  "/world",
			headers: map[string]string{"traceparent": "00-3d23d071b5bfd6579171efce907685cb-08f067aa0ba902b7-01"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter()

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			assertGreeting(t, resp)
		})
	}
}

func TestGetWorldIgnoresRequestBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/world", strings.NewReader(`{"name":"Mars"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assertGreeting(t, resp)
}

func TestGetWorldConcurrent(t *testing.T) {
	router := newTestRouter()

	var wg sync.WaitGroup
	bodies := make([]string, 32)
	codes := make([]int, len(bodies))
	for i := range bodies {
		wg.Go(func() {
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/world", nil))
			bodies[i] = resp.Body.String()
			codes[i] = resp.Code
		})
	}
	wg.Wait()

	for i := range bodies {
		if codes[i] != http.StatusOK || bodies[i] != Greeting {
			t.Fatalf("request %d: got %d %q", i, codes[i], bodies[i])
		}
	}
}

func TestHeadWorld(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodHead, "/world", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "world-head")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", resp.Body.String())
	}
	if ct := resp.Header().Get("Content-Type"); ct != contentType {
		t.Fatalf("expected %s, got %q", contentType, ct)
	}
	if cl := resp.Header().Get("Content-Length"); cl != "5" {
		t.Fatalf("expected Content-Length 5, got %q", cl)
	}
}

func TestOptionsWorldListsMethods(t *testing.T) {
	router := newTestRouter()

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodOptions, "/world", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); allow != "GET, HEAD, OPTIONS" {
		t.Fatalf("expected Allow 'GET, HEAD, OPTIONS', got %q", allow)
	}
	if resp.Body.Len() != 0 {
		t.Fatalf("expected empty body, got %q", resp.Body.String())
	}
}

func TestOtherMethodsAreNotAllowed(t *testing.T) {
	for _, method := range []string{http.MethodPost, http.MethodPut, http.MethodDelete} {
		t.Run(method, func(t *testing.T) {
			router := newTestRouter()

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(method, "/world", nil))

			if resp.Code != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d", resp.Code)
			}
			if allow := resp.Header().Get("Allow"); allow != "GET, HEAD, OPTIONS" {
				t.Fatalf("expected Allow 'GET, HEAD, OPTIONS', got %q", allow)
			}
		})
	}
}

func TestOtherPathsAreNotFound(t *testing.T) {
	for _, target := range []string{"/", "/worlds", "/world/", "/World", "/hello"} {
		t.Run(target, func(t *testing.T) {
			router := newTestRouter()

			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, target, nil))

			if resp.Code != http.StatusNotFound {
				t.Fatalf("expected 404, got %d", resp.Code)
			}
			if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Fatalf("expected application/problem+json, got %q", ct)
			}
		})
	}
}

func TestOpenAPIDocumentsPlainText(t *testing.T) {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("WorldTest", "test"))
	Register(api)

	op := api.OpenAPI().Paths["/world"].Get
	if op == nil {
		t.Fatal("expected GET /world operation")
	}
	if op.OperationID != "get-world" {
		t.Fatalf("unexpected operation ID %q", op.OperationID)
	}
	content := op.Responses["200"].Content
	if _, ok := content["text/plain"]; !ok {
		t.Fatalf("expected text/plain response content, got %v", content)
	}
	if head := api.OpenAPI().Paths["/world"].Head; head == nil || head.OperationID != "head-world" {
		t.Fatalf("expected HEAD /world operation, got %+v", head)
	}
}

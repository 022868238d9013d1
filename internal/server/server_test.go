package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/iwvelando/fincalc/internal/cache"
	"github.com/iwvelando/fincalc/pkg/format"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newTestServer(t *testing.T, opts Options) *Server {
	t.Helper()
	srv := NewHandler(zap.NewNop(), opts)
	t.Cleanup(srv.Close)
	return srv
}

func do(srv http.Handler, method, target string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	srv.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("expected JSON error body, got %q: %v", rr.Body.String(), err)
	}
	return payload["error"]
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(t, Options{Version: " 1.2.3 "})
	rr := do(srv, http.MethodGet, "/api/version", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if payload["version"] != "1.2.3" {
		t.Fatalf("expected version 1.2.3, got %q", payload["version"])
	}

	rr = do(newTestServer(t, Options{}), http.MethodGet, "/api/version", "")
	if !strings.Contains(rr.Body.String(), `"dev"`) {
		t.Fatalf("expected dev version by default, got %s", rr.Body.String())
	}
}

func TestHandleList(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodGet, "/api/calculators", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	var summaries []calculatorSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(summaries) != 12 {
		t.Fatalf("expected 12 calculators, got %d", len(summaries))
	}
	if summaries[0].Slug != "mortgage" || summaries[0].Route != "/calculator/mortgage" {
		t.Fatalf("unexpected first calculator %+v", summaries[0])
	}
}

func TestHandleDefinition(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodGet, "/api/calculators/emi", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	var def calculatorDefinition
	if err := json.Unmarshal(rr.Body.Bytes(), &def); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(def.Fields) != 3 {
		t.Fatalf("expected 3 fields, got %d", len(def.Fields))
	}
	if def.Defaults["principal"] != 500000 {
		t.Fatalf("expected principal default 500000, got %v", def.Defaults["principal"])
	}
}

func TestHandleDefinitionYAML(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodGet, "/api/calculators/emi?format=yaml", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/yaml" {
		t.Fatalf("expected YAML content type, got %s", ct)
	}

	var exported map[string]map[string]map[string]float64
	if err := yaml.Unmarshal(rr.Body.Bytes(), &exported); err != nil {
		t.Fatalf("failed to decode YAML export: %v", err)
	}
	if got := exported["calculators"]["emi"]["tenure"]; got != 3 {
		t.Fatalf("expected tenure default 3 in export, got %v", got)
	}
}

func TestHandleComputeSuccess(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodPost, "/api/calculators/emi", `{"values":{"principal":500000,"rate":10,"tenure":3,"extra":1}}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Cache") != "miss" {
		t.Fatalf("expected cache miss header, got %q", rr.Header().Get("X-Cache"))
	}

	var resp computeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Calculator != "emi" {
		t.Fatalf("expected emi, got %s", resp.Calculator)
	}
	if len(resp.Cards) == 0 || resp.Cards[0].Key != "emi" || resp.Cards[0].Value != "₹16,134" {
		t.Fatalf("unexpected cards %+v", resp.Cards)
	}
	if len(resp.Warnings) != 1 || !strings.Contains(resp.Warnings[0], "extra") {
		t.Fatalf("expected a warning for the unknown field, got %v", resp.Warnings)
	}
}

func TestHandleComputeClampsValues(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodPost, "/api/calculators/emi", `{"values":{"tenure":40}}`)

	var resp computeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Values["tenure"] != 7 {
		t.Fatalf("expected tenure clamped to 7, got %v", resp.Values["tenure"])
	}
}

func TestHandleComputeCached(t *testing.T) {
	srv := newTestServer(t, Options{Cache: cache.NewMemory(8, time.Minute)})
	body := `{"values":{"principal":750000}}`

	first := do(srv, http.MethodPost, "/api/calculators/emi", body)
	second := do(srv, http.MethodPost, "/api/calculators/emi", body)

	if first.Header().Get("X-Cache") != "miss" || second.Header().Get("X-Cache") != "hit" {
		t.Fatalf("expected miss then hit, got %q then %q", first.Header().Get("X-Cache"), second.Header().Get("X-Cache"))
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Fatal("cached body differs from computed body")
	}
}

func TestHandlerUsesConfiguredLocale(t *testing.T) {
	us, err := format.New("en-US", "USD")
	if err != nil {
		t.Fatal(err)
	}
	shared := cache.NewMemory(8, time.Minute)
	srv := newTestServer(t, Options{Formatter: us, Cache: shared})

	rr := do(srv, http.MethodPost, "/api/calculators/emi", `{"values":{"principal":500000}}`)
	var resp computeResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Cards) == 0 || resp.Cards[0].Value != "$16,134" {
		t.Fatalf("expected dollar cards, got %+v", resp.Cards)
	}

	page := do(srv, http.MethodGet, "/calculator/emi?principal=1000000", "")
	if !strings.Contains(page.Body.String(), "$32,267") {
		t.Fatal("calculator page not rendered in the configured locale")
	}
	export := do(srv, http.MethodGet, "/api/calculators/emi/export.csv?principal=1000000", "")
	if !strings.Contains(export.Body.String(), "$32,267") {
		t.Fatalf("csv export not rendered in the configured locale: %s", export.Body.String())
	}

	// A server in another locale must not reuse the cached dollar body.
	indian := newTestServer(t, Options{Cache: shared})
	rr = do(indian, http.MethodPost, "/api/calculators/emi", `{"values":{"principal":500000}}`)
	if rr.Header().Get("X-Cache") != "miss" || !strings.Contains(rr.Body.String(), "₹16,134") {
		t.Fatalf("expected a rupee cache miss, got %q: %s", rr.Header().Get("X-Cache"), rr.Body.String())
	}
}

func TestHandleComputeErrors(t *testing.T) {
	tests := []struct {
		name     string
		opts     Options
		target   string
		body     string
		status   int
		contains string
	}{
		{
			name:     "unknown calculator",
			target:   "/api/calculators/crypto",
			body:     `{"values":{}}`,
			status:   http.StatusNotFound,
			contains: "unknown calculator",
		},
		{
			name:     "malformed JSON",
			target:   "/api/calculators/emi",
			body:     `{"values":`,
			status:   http.StatusBadRequest,
			contains: "failed to decode request",
		},
		{
			name:     "body too large",
			opts:     Options{MaxUploadSize: 16},
			target:   "/api/calculators/emi",
			body:     `{"values":{"principal":500000,"rate":10}}`,
			status:   http.StatusRequestEntityTooLarge,
			contains: "exceeds limit of 16 bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, tt.opts)
			rr := do(srv, http.MethodPost, tt.target, tt.body)
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if msg := decodeError(t, rr); !strings.Contains(msg, tt.contains) {
				t.Fatalf("expected error containing %q, got %q", tt.contains, msg)
			}
		})
	}
}

func TestHandleExport(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		status      int
		contentType string
		prefix      string
	}{
		{
			name:        "csv",
			target:      "/api/calculators/emi/export.csv?principal=1000000",
			status:      http.StatusOK,
			contentType: "text/csv",
			prefix:      "card,value,formatted",
		},
		{
			name:        "pdf",
			target:      "/api/calculators/salary/export.pdf",
			status:      http.StatusOK,
			contentType: "application/pdf",
			prefix:      "%PDF-",
		},
		{
			name:        "json",
			target:      "/api/calculators/sip/export.json",
			status:      http.StatusOK,
			contentType: "application/json",
			prefix:      "{",
		},
		{
			name:        "unsupported",
			target:      "/api/calculators/emi/export.xml",
			status:      http.StatusNotFound,
			contentType: "application/json",
			prefix:      `{"error"`,
		},
	}

	srv := newTestServer(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(srv, http.MethodGet, tt.target, "")
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
			if ct := rr.Header().Get("Content-Type"); ct != tt.contentType {
				t.Fatalf("expected content type %s, got %s", tt.contentType, ct)
			}
			if !strings.HasPrefix(rr.Body.String(), tt.prefix) {
				t.Fatalf("expected body to start with %q, got %.40q", tt.prefix, rr.Body.String())
			}
		})
	}
}

func TestHandleExportWarnings(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodGet, "/api/calculators/emi/export.csv?principal=lots", "")

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("X-Warnings"), "principal") {
		t.Fatalf("expected a warning for principal, got %q", rr.Header().Get("X-Warnings"))
	}
}

func TestPages(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		status   int
		contains string
	}{
		{name: "index", target: "/", status: http.StatusOK, contains: "Mortgage Calculator"},
		{name: "contact", target: "/contact", status: http.StatusOK, contains: "Contact"},
		{name: "calculator defaults", target: "/calculator/emi", status: http.StatusOK, contains: "₹16,134"},
		{name: "calculator query", target: "/calculator/emi?principal=1000000", status: http.StatusOK, contains: "₹32,267"},
		{name: "calculator bad query", target: "/calculator/emi?principal=abc", status: http.StatusOK, contains: "not numeric"},
		{name: "unknown calculator", target: "/calculator/crypto", status: http.StatusNotFound, contains: "Page not found"},
		{name: "unknown page", target: "/nope", status: http.StatusNotFound, contains: "/nope"},
	}

	srv := newTestServer(t, Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(srv, http.MethodGet, tt.target, "")
			if rr.Code != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, rr.Code)
			}
			if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Fatalf("expected HTML, got %s", ct)
			}
			if !strings.Contains(rr.Body.String(), tt.contains) {
				t.Fatalf("expected page to contain %q", tt.contains)
			}
		})
	}
}

func TestEveryCalculatorPageRenders(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodGet, "/api/calculators", "")
	var summaries []calculatorSummary
	if err := json.Unmarshal(rr.Body.Bytes(), &summaries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	for _, s := range summaries {
		t.Run(s.Slug, func(t *testing.T) {
			rr := do(srv, http.MethodGet, s.Route, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("expected status 200, got %d", rr.Code)
			}
		})
	}
}

func TestUnknownAPIRoute(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodGet, "/api/nope", "")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rr.Code)
	}
	if msg := decodeError(t, rr); !strings.Contains(msg, "/api/nope") {
		t.Fatalf("unexpected error %q", msg)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, Options{})
	rr := do(srv, http.MethodDelete, "/api/version", "")

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rr.Code)
	}
}

func TestRateLimit(t *testing.T) {
	srv := newTestServer(t, Options{RequestsPerMinute: 2})

	for i := range 2 {
		if rr := do(srv, http.MethodGet, "/api/version", ""); rr.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i, rr.Code)
		}
	}
	rr := do(srv, http.MethodGet, "/api/version", "")
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rr.Code)
	}
}

func TestRateLimiterRefill(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)
	defer rl.Stop()

	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	if !rl.Allow("a") {
		t.Fatal("first request should be allowed")
	}
	if rl.Allow("a") {
		t.Fatal("second request should be limited")
	}
	if !rl.Allow("b") {
		t.Fatal("other clients have their own bucket")
	}

	now = now.Add(time.Minute)
	if !rl.Allow("a") {
		t.Fatal("bucket should refill after the period")
	}

	now = now.Add(2 * time.Hour)
	rl.cleanup()
	if len(rl.clients) != 0 {
		t.Fatalf("expected idle buckets to be removed, got %d", len(rl.clients))
	}
	rl.Stop()
}

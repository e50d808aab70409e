package chi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/internal/domain/search/result"
	gen "github.com/kailas-cloud/esquery/internal/transport/generated"
	healthuc "github.com/kailas-cloud/esquery/internal/usecase/health"
)

func decodeMap(t *testing.T, body string) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal([]byte(body), &m); err != nil {
		t.Fatalf("decode response %q: %v", body, err)
	}
	return m
}

func decodeError(t *testing.T, body string) gen.ErrorResponse {
	t.Helper()
	var e gen.ErrorResponse
	if err := json.Unmarshal([]byte(body), &e); err != nil {
		t.Fatalf("decode error response %q: %v", body, err)
	}
	return e
}

// --- Compose ---

func TestCompose_JSON(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "POST", "/v1/compose", "application/json", `{
		"queries": [{"match": {"title": "rock"}}],
		"filters": [
			{"geo_distance": {"distance": "10km", "loc": {"lat": 48.85, "lon": 2.35}}},
			{"term": {"city": "paris"}},
			{"term": {"kind": "concert"}}
		],
		"size": 10
	}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	want := map[string]any{
		"query": map[string]any{"filtered": map[string]any{
			"query": map[string]any{"match": map[string]any{"title": "rock"}},
			"filter": map[string]any{"and": map[string]any{"filters": []any{
				map[string]any{"bool": map[string]any{"must": []any{
					map[string]any{"term": map[string]any{"city": "paris"}},
					map[string]any{"term": map[string]any{"kind": "concert"}},
				}}},
				map[string]any{"geo_distance": map[string]any{
					"distance": "10km",
					"loc":      map[string]any{"lat": 48.85, "lon": 2.35},
				}},
			}}},
		}},
		"size": float64(10),
	}
	if diff := cmp.Diff(want, decodeMap(t, rr.Body.String())); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_YAML(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "POST", "/v1/compose", "application/yaml", "queries:\n  - match_all: {}\n")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	want := map[string]any{"query": map[string]any{"match_all": map[string]any{}}}
	if diff := cmp.Diff(want, decodeMap(t, rr.Body.String())); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_FormatQueryParam(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "POST", "/v1/compose?format=yaml", "text/plain", "size: 3\n")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if got := decodeMap(t, rr.Body.String())["size"]; got != float64(3) {
		t.Errorf("size = %v, want 3", got)
	}
}

func TestCompose_InvalidDocument_400(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "POST", "/v1/compose", "application/json", `{"filters":[{"term":{"a":1},"range":{"b":{}}}]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	e := decodeError(t, rr.Body.String())
	if e.Code != gen.ErrorResponseCodeInvalidDocument {
		t.Errorf("code = %q, want %q", e.Code, gen.ErrorResponseCodeInvalidDocument)
	}
	if !strings.Contains(e.Message, "filters[0]") {
		t.Errorf("message should point at the entry: %q", e.Message)
	}
}

func TestCompose_BodyTooLarge_413(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "POST", "/v1/compose", "application/json", `{"size":1,"from":`+strings.Repeat("0", 5000)+`}`)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rr.Code)
	}
	if e := decodeError(t, rr.Body.String()); e.Code != gen.ErrorResponseCodePayloadTooLarge {
		t.Errorf("code = %q, want %q", e.Code, gen.ErrorResponseCodePayloadTooLarge)
	}
}

// --- Search ---

func TestSearch_HappyPath(t *testing.T) {
	h, ms, _ := newTestServer(t)
	ms.searchFn = func(_ context.Context, _ string, _ request.Request) (result.Set, error) {
		return result.Set{
			Took:     2,
			Total:    1,
			MaxScore: 1.2,
			Hits:     []result.Result{result.New("e1", "events", "event", 1.2, json.RawMessage(`{"city":"paris"}`))},
		}, nil
	}

	rr := do(t, h, "POST", "/v1/indexes/events/search", "application/json", `{"filters":[{"term":{"city":"paris"}}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ms.index != "events" {
		t.Errorf("index = %q, want events", ms.index)
	}
	if ms.lastReq.Filter() == nil {
		t.Error("filter was not passed to the searcher")
	}

	var resp gen.SearchResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 1 || len(resp.Hits) != 1 || resp.Hits[0].Id != "e1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Hits[0].Score == nil || *resp.Hits[0].Score != 1.2 {
		t.Errorf("score = %v, want 1.2", resp.Hits[0].Score)
	}
	if string(resp.Hits[0].Source) != `{"city":"paris"}` {
		t.Errorf("source = %s", resp.Hits[0].Source)
	}
}

func TestSearch_AllIndices(t *testing.T) {
	h, ms, _ := newTestServer(t)

	rr := do(t, h, "POST", "/v1/search", "application/json", `{}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if ms.index != "" {
		t.Errorf("index = %q, want empty", ms.index)
	}
}

func TestSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   gen.ErrorResponseCode
		wantMsg    string
	}{
		{"not found", domain.ErrIndexNotFound, http.StatusNotFound, gen.ErrorResponseCodeIndexNotFound, "index not found"},
		{
			"rejected",
			domain.NewEngineError(domain.ErrEngineRejected, 400, "parsing_exception", "unknown query [foo]"),
			http.StatusBadGateway, gen.ErrorResponseCodeEngineRejected, "search engine rejected request: unknown query [foo]",
		},
		{"unavailable", domain.ErrEngineUnavailable, http.StatusServiceUnavailable, gen.ErrorResponseCodeEngineUnavailable, "search engine unavailable"},
		{"internal", errors.New("secret detail"), http.StatusInternalServerError, gen.ErrorResponseCodeInternalError, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ms, _ := newTestServer(t)
			ms.searchFn = func(_ context.Context, _ string, _ request.Request) (result.Set, error) {
				return result.Set{}, tt.err
			}

			rr := do(t, h, "POST", "/v1/indexes/events/search", "application/json", `{}`)
			if rr.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rr.Code, tt.wantStatus)
			}
			e := decodeError(t, rr.Body.String())
			if e.Code != tt.wantCode || e.Message != tt.wantMsg {
				t.Errorf("error = %+v, want {%s %s}", e, tt.wantCode, tt.wantMsg)
			}
		})
	}
}

// --- Health ---

func TestHealthCheck(t *testing.T) {
	h, _, mh := newTestServer(t)

	rr := do(t, h, "GET", "/health", "", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	mh.report = healthuc.Report{
		Status: healthuc.Unhealthy,
		Checks: map[string]healthuc.CheckResult{"engine": healthuc.CheckError},
	}
	rr = do(t, h, "GET", "/health", "", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	var resp gen.HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "error" || resp.Checks["engine"] != "error" {
		t.Errorf("unexpected health response: %+v", resp)
	}
}

// --- Routing & middleware ---

func TestRoutes_NotFound(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "GET", "/v1/nope", "", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
	if e := decodeError(t, rr.Body.String()); e.Code != gen.ErrorResponseCodeNotFound {
		t.Errorf("code = %q, want %q", e.Code, gen.ErrorResponseCodeNotFound)
	}
}

func TestRoutes_MethodNotAllowed(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "GET", "/v1/compose", "", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}

func TestRoutes_RequestIDHeader(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "GET", "/health", "", "")
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestRoutes_AuthEnforced(t *testing.T) {
	srv := NewServer(&mockSearcher{}, &mockHealth{report: healthuc.Report{Status: healthuc.Healthy}}, zap.NewNop())
	h := srv.Routes([]string{"secret"})

	if rr := do(t, h, "POST", "/v1/compose", "application/json", `{}`); rr.Code != http.StatusUnauthorized {
		t.Errorf("compose without token: status = %d, want 401", rr.Code)
	}
	if rr := do(t, h, "GET", "/health", "", ""); rr.Code != http.StatusOK {
		t.Errorf("health without token: status = %d, want 200", rr.Code)
	}
}

func TestJSONRecoverer(t *testing.T) {
	h := JSONRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rr := do(t, h, "GET", "/", "", "")
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rr.Code)
	}
	if e := decodeError(t, rr.Body.String()); e.Code != gen.ErrorResponseCodeInternalError {
		t.Errorf("code = %q, want %q", e.Code, gen.ErrorResponseCodeInternalError)
	}
}

func TestDocumentFormat(t *testing.T) {
	yml := gen.DocumentFormatYml
	jsonFmt := gen.DocumentFormatJson
	tests := []struct {
		contentType string
		format      *gen.DocumentFormat
		want        string
	}{
		{"application/json; charset=utf-8", nil, "json"},
		{"application/x-yaml", nil, "yaml"},
		{"", nil, ""},
		{"application/json", &yml, "yaml"},
		{"", &jsonFmt, "json"},
	}
	for _, tt := range tests {
		r, _ := http.NewRequest("POST", "/x", http.NoBody)
		if tt.contentType != "" {
			r.Header.Set("Content-Type", tt.contentType)
		}
		got, err := documentFormat(r, tt.format)
		if err != nil {
			t.Fatalf("documentFormat(%q): %v", tt.contentType, err)
		}
		if string(got) != tt.want {
			t.Errorf("documentFormat(%q, %v) = %q, want %q", tt.contentType, tt.format, got, tt.want)
		}
	}
}

func TestRoutes_InvalidQueryParameter_400(t *testing.T) {
	tests := []struct {
		name, target string
		wantMsg      string
	}{
		{"pretty not a bool", "/v1/compose?pretty=maybe", "pretty"},
		{"pretty on search", "/v1/indexes/events/search?pretty=2x", "pretty"},
		{"unknown format", "/v1/search?format=toml", `unsupported format "toml"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, ms, _ := newTestServer(t)

			rr := do(t, h, "POST", tt.target, "application/json", `{}`)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body = %s", rr.Code, rr.Body.String())
			}
			e := decodeError(t, rr.Body.String())
			if e.Code != gen.ErrorResponseCodeBadRequest {
				t.Errorf("code = %q, want %q", e.Code, gen.ErrorResponseCodeBadRequest)
			}
			if !strings.Contains(e.Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to mention %q", e.Message, tt.wantMsg)
			}
			if ms.calls != 0 {
				t.Errorf("searcher called %d times, want 0", ms.calls)
			}
		})
	}
}

func TestCompose_Pretty(t *testing.T) {
	h, _, _ := newTestServer(t)

	rr := do(t, h, "POST", "/v1/compose?pretty=true", "application/json", `{"size":1}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if want := "{\n  \"size\": 1\n}\n"; rr.Body.String() != want {
		t.Errorf("body = %q, want %q", rr.Body.String(), want)
	}
}

func TestServer_Unimplemented(t *testing.T) {
	rr := httptest.NewRecorder()
	gen.Unimplemented{}.HealthCheck(rr, httptest.NewRequest("GET", "/health", http.NoBody))
	if rr.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rr.Code)
	}
}

package chi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/esquery/internal/usecase/health"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// mockSearcher implements Searcher for tests.
type mockSearcher struct {
	searchFn func(ctx context.Context, index string, req request.Request) (result.Set, error)
	index    string
	lastReq  request.Request
	calls    int
}

func (m *mockSearcher) Compose(b *request.Builder) (request.Request, error) {
	return b.Build()
}

func (m *mockSearcher) Search(ctx context.Context, index string, req request.Request) (result.Set, error) {
	m.calls++
	m.index = index
	m.lastReq = req
	if m.searchFn != nil {
		return m.searchFn(ctx, index, req)
	}
	return result.Set{}, nil
}

type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report { return m.report }

func newTestServer(t *testing.T) (http.Handler, *mockSearcher, *mockHealth) {
	t.Helper()
	ms := &mockSearcher{}
	mh := &mockHealth{report: healthuc.Report{
		Status: healthuc.Healthy,
		Checks: map[string]healthuc.CheckResult{"engine": healthuc.CheckOK},
	}}
	srv := NewServer(ms, mh, zap.NewNop()).WithMaxBodyBytes(4096)
	return srv.Routes(nil), ms, mh
}

func do(t *testing.T, h http.Handler, method, path, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

package esquery

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/esquery/pkg/dsl"
)

type engineStub struct {
	path string
	body map[string]any
}

func newEngine(t *testing.T, status int, response string) (*engineStub, *httptest.Server) {
	t.Helper()
	stub := &engineStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			_, _ = w.Write([]byte(`{"version":{"number":"1.7.6"}}`))
			return
		}
		stub.path = r.URL.Path
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &stub.body)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return stub, srv
}

func TestNew_NoAddress(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error when no address provided")
	}
}

func TestNew_SkipReadiness(t *testing.T) {
	c, err := New(WithElasticsearch("127.0.0.1:1"), WithoutReadinessCheck())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	if err := c.Ping(context.Background()); err == nil {
		t.Error("expected ping error for unreachable engine")
	}
}

func TestIndex_All(t *testing.T) {
	c := &Client{}
	if name := c.Index("_all").Name(); name != "" {
		t.Errorf("Index(_all).Name() = %q, want empty", name)
	}
	if name := c.Index("events").Name(); name != "events" {
		t.Errorf("Index(events).Name() = %q, want events", name)
	}
}

func TestQueryBuilder_Do(t *testing.T) {
	stub, srv := newEngine(t, http.StatusOK, `{
		"took": 3, "timed_out": false,
		"hits": {"total": 2, "max_score": null, "hits": [
			{"_index":"events","_type":"event","_id":"1","_score":null,"_source":{"name":"Rock night"},"sort":[1420070400000]},
			{"_index":"events","_type":"event","_id":"2","_score":null,"_source":{"name":"Jazz brunch"},"sort":[1420156800000]}
		]},
		"aggregations": {"cities": {"buckets": [{"key":"paris","doc_count":2}]}}
	}`)

	c, err := New(WithElasticsearch(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	res, err := c.Index("events").Query().
		Filter(
			dsl.NewGeoDistanceFilter("loc", 48.85, 2.35, "10km"),
			dsl.NewTermFilter("city", "paris"),
		).
		Sort(dsl.NewFieldSort("date")).
		Aggregate(dsl.NewTermsAggregation("cities", "city")).
		Size(2).
		Do(context.Background())
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	if stub.path != "/events/_search" {
		t.Errorf("path = %q, want /events/_search", stub.path)
	}
	want := map[string]any{
		"query": map[string]any{"filtered": map[string]any{
			"filter": map[string]any{"and": map[string]any{"filters": []any{
				map[string]any{"term": map[string]any{"city": "paris"}},
				map[string]any{"geo_distance": map[string]any{
					"distance": "10km",
					"loc":      map[string]any{"lat": 48.85, "lon": 2.35},
				}},
			}}},
		}},
		"size": float64(2),
		"sort": []any{"date"},
		"aggs": map[string]any{"cities": map[string]any{"terms": map[string]any{"field": "city"}}},
	}
	if diff := cmp.Diff(want, stub.body); diff != "" {
		t.Errorf("request body mismatch (-want +got):\n%s", diff)
	}

	if res.Total != 2 || len(res.Hits) != 2 {
		t.Fatalf("total=%d hits=%d, want 2/2", res.Total, len(res.Hits))
	}
	if res.Hits[0].Scored {
		t.Error("hit sorted by field should be unscored")
	}

	type event struct {
		Name string `json:"name"`
	}
	events, err := Decode[event](res)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff([]event{{"Rock night"}, {"Jazz brunch"}}, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	var cities struct {
		Buckets []struct {
			Key      string `json:"key"`
			DocCount int    `json:"doc_count"`
		} `json:"buckets"`
	}
	ok, err := res.Aggregation("cities", &cities)
	if err != nil || !ok {
		t.Fatalf("Aggregation: ok=%v err=%v", ok, err)
	}
	if len(cities.Buckets) != 1 || cities.Buckets[0].Key != "paris" {
		t.Errorf("buckets = %+v", cities.Buckets)
	}
	if ok, _ := res.Aggregation("missing", &cities); ok {
		t.Error("Aggregation(missing) reported present")
	}
}

func TestQueryBuilder_IndexNotFound(t *testing.T) {
	_, srv := newEngine(t, http.StatusNotFound,
		`{"error":{"type":"index_not_found_exception","reason":"no such index"},"status":404}`)

	c, err := New(WithElasticsearch(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Index("nope").Query().Do(context.Background())
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("err = %v, want ErrIndexNotFound", err)
	}
}

func TestQueryBuilder_Rejected(t *testing.T) {
	_, srv := newEngine(t, http.StatusBadRequest,
		`{"error":{"type":"search_phase_execution_exception","reason":"bad script"},"status":400}`)

	c, err := New(WithElasticsearch(srv.URL))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	_, err = c.Index("events").Query().Filter(dsl.NewScriptFilter("boom")).Do(context.Background())
	if !errors.Is(err, ErrEngineRejected) {
		t.Fatalf("err = %v, want ErrEngineRejected", err)
	}
	var engErr *EngineError
	if !errors.As(err, &engErr) || engErr.Reason != "bad script" {
		t.Errorf("EngineError = %+v, want reason %q", engErr, "bad script")
	}
}

func TestNewQuery_DoUnbound(t *testing.T) {
	if _, err := NewQuery().Do(context.Background()); !errors.Is(err, ErrUnbound) {
		t.Errorf("err = %v, want ErrUnbound", err)
	}
}

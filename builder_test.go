package esquery

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/esquery/pkg/dsl"
)

func TestNewQuery_Source(t *testing.T) {
	body, err := NewQuery().
		Must(dsl.NewMatchQuery("title", "rock"), dsl.NewTermQuery("lang", "fr")).
		Filter(dsl.NewTermFilter("city", "paris"), dsl.NewTermFilter("kind", "concert")).
		From(10).
		Size(5).
		MinScore(0.2).
		Source()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]any{
		"query": map[string]any{"filtered": map[string]any{
			"query": map[string]any{"bool": map[string]any{"must": []any{
				map[string]any{"match": map[string]any{"title": "rock"}},
				map[string]any{"term": map[string]any{"lang": "fr"}},
			}}},
			"filter": map[string]any{"bool": map[string]any{"must": []any{
				map[string]any{"term": map[string]any{"city": "paris"}},
				map[string]any{"term": map[string]any{"kind": "concert"}},
			}}},
		}},
		"from":      10,
		"size":      5,
		"min_score": 0.2,
	}
	if diff := cmp.Diff(want, body); diff != "" {
		t.Errorf("Source() mismatch (-want +got):\n%s", diff)
	}
}

func TestNewQuery_Empty(t *testing.T) {
	req, err := NewQuery().Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !req.IsMatchAll() {
		t.Error("empty builder should yield a match-all request")
	}
}

func TestQueryBuilder_AddAfterBuild(t *testing.T) {
	q := NewQuery().Filter(dsl.NewTermFilter("a", 1))
	if _, err := q.Build(); err != nil {
		t.Fatalf("first Build: %v", err)
	}
	if _, err := q.Build(); err != nil {
		t.Fatalf("repeated Build: %v", err)
	}

	q.Filter(dsl.NewTermFilter("b", 2))
	if _, err := q.Build(); !errors.Is(err, ErrFinalized) {
		t.Errorf("err = %v, want ErrFinalized", err)
	}
}

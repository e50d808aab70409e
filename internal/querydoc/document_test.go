package querydoc

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/pkg/dsl"
)

const yamlDoc = `
queries:
  - match: {title: rock}
filters:
  - geo_distance: {distance: 10km, loc: {lat: 48.85, lon: 2.35}}
  - term: {city: paris}
  - term: {kind: concert}
sort:
  - _score
  - date: {order: desc}
aggs:
  cities: {terms: {field: city}}
from: 0
size: 20
min_score: 0.5
`

func TestBuild_YAML(t *testing.T) {
	r, err := Build([]byte(yamlDoc), FormatAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
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
		"from":      0,
		"size":      20,
		"min_score": 0.5,
		"sort": []any{
			"_score",
			map[string]any{"date": map[string]any{"order": "desc"}},
		},
		"aggs": map[string]any{
			"cities": map[string]any{"terms": map[string]any{"field": "city"}},
		},
	}
	if diff := cmp.Diff(want, r.Source()); diff != "" {
		t.Errorf("Source() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuild_JSON(t *testing.T) {
	r, err := Build([]byte(`{"filters":[{"script":{"script":"doc['a'].value > 1"}},{"numeric_range":{"price":{"lt":10}}}]}`), FormatAuto)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	chain, ok := r.Filter().(*dsl.AndFilter)
	if !ok {
		t.Fatalf("Filter() = %T, want *dsl.AndFilter", r.Filter())
	}
	if n := len(chain.Filters()); n != 2 {
		t.Errorf("chain len = %d, want 2", n)
	}
	if r.Query() != nil {
		t.Errorf("Query() = %v, want nil", r.Query())
	}
}

func TestBuild_Empty(t *testing.T) {
	for _, in := range []string{"", "{}", "   \n"} {
		r, err := Build([]byte(in), FormatAuto)
		if err != nil {
			t.Fatalf("Build(%q): unexpected error: %v", in, err)
		}
		if !r.IsMatchAll() {
			t.Errorf("Build(%q) should be match-all", in)
		}
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format Format
	}{
		{"two keys", `{"queries":[{"match":{"a":1},"term":{"b":2}}]}`, FormatJSON},
		{"no key", `{"filters":[{}]}`, FormatJSON},
		{"scalar body", `{"filters":[{"term":"x"}]}`, FormatJSON},
		{"unknown field", `{"query":{"match":{}}}`, FormatJSON},
		{"bad sort", `{"sort":[42]}`, FormatJSON},
		{"empty sort", `{"sort":[""]}`, FormatJSON},
		{"sort two keys", `{"sort":[{"a":"asc","b":"desc"}]}`, FormatJSON},
		{"agg not object", `{"aggs":{"x":1}}`, FormatJSON},
		{"agg empty", `{"aggs":{"x":{}}}`, FormatJSON},
		{"size not int", `{"size":"ten"}`, FormatJSON},
		{"trailing", `{} {}`, FormatJSON},
		{"broken yaml", "filters: [", FormatYAML},
		{"yaml infinite number", "filters: [{range: {price: {lt: .inf}}}]", FormatYAML},
		{"yaml sequence key", "filters: [{script: {params: {[1, 2]: a}}}]", FormatYAML},
		{"unknown yaml field", "limit: 3", FormatYAML},
		{"unknown format", "{}", Format("toml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in), tt.format)
			if !errors.Is(err, domain.ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}

func TestApply_RawFiltersAreClassified(t *testing.T) {
	doc, err := Parse([]byte(`
filters:
  - geo_bounding_box: {loc: {top_left: [0, 1], bottom_right: [1, 0]}}
  - range: {age: {gte: 18}}
`), FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b := request.NewBuilder()
	if err := Apply(doc, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fs := b.Filters()
	if len(fs) != 2 {
		t.Fatalf("registered %d filters, want 2", len(fs))
	}
	if fs[0].FilterType() != "GeoBoundingBox" || fs[1].FilterType() != "Range" {
		t.Errorf("types = %s/%s", fs[0].FilterType(), fs[1].FilterType())
	}
}

func TestApply_AggregationsInNameOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"aggs":{"b":{"avg":{"field":"x"}},"a":{"max":{"field":"y"}}}}`), FormatJSON)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b := request.NewBuilder()
	if err := Apply(doc, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	aggs := r.Aggregations()
	if len(aggs) != 2 || aggs[0].Name() != "a" || aggs[1].Name() != "b" {
		t.Errorf("aggregation order = %v", aggs)
	}
}

func TestApply_InvalidDocument(t *testing.T) {
	doc := Document{Filters: []map[string]any{{"a": map[string]any{}, "b": map[string]any{}}}}
	if err := Apply(doc, request.NewBuilder()); !errors.Is(err, domain.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestBuild_LargeIntegersPassThrough(t *testing.T) {
	tests := []struct {
		name   string
		in     string
		format Format
	}{
		{"json", `{"filters":[{"term":{"user_id":12345678901234567}}]}`, FormatJSON},
		{"yaml", "filters: [{term: {user_id: 12345678901234567}}]", FormatYAML},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Build([]byte(tt.in), tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			body, err := json.Marshal(r.Source())
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			want := `{"query":{"filtered":{"filter":{"term":{"user_id":12345678901234567}}}}}`
			if string(body) != want {
				t.Errorf("body = %s, want %s", body, want)
			}
		})
	}
}

func TestParse_YAMLNonStringKeys(t *testing.T) {
	r, err := Build([]byte(`
filters:
  - script:
      script: "doc['a'].value > p"
      params: {1: a, true: b, nested: [{2: c}]}
`), FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	body, err := json.Marshal(r.Source())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, frag := range []string{`"1":"a"`, `"true":"b"`, `"nested":[{"2":"c"}]`} {
		if !strings.Contains(string(body), frag) {
			t.Errorf("body %s does not contain %s", body, frag)
		}
	}
}

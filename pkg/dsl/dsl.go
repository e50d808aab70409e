package dsl

// Query is a relevance-scoring fragment.
type Query interface {
	Source() map[string]any
}

// Filter is a boolean inclusion/exclusion fragment.
//
// FilterType returns the declared type name, e.g. "Term" or "GeoDistance".
// A namespace prefix ("dsl.GeoDistance") is allowed; consumers strip it.
type Filter interface {
	FilterType() string
	Source() map[string]any
}

// Sort is a single sort specification. Source returns either a plain
// string ("_score", "date") or an object ({"date":{"order":"desc"}}).
type Sort interface {
	Source() any
}

// Aggregation is a named aggregation definition.
type Aggregation interface {
	Name() string
	Source() map[string]any
}

// querySources renders clauses in order. Nil clauses are skipped.
func querySources(qs []Query) []any {
	out := make([]any, 0, len(qs))
	for _, q := range qs {
		if q != nil {
			out = append(out, q.Source())
		}
	}
	return out
}

// filterSources renders clauses in order. Nil clauses are skipped.
func filterSources(fs []Filter) []any {
	out := make([]any, 0, len(fs))
	for _, f := range fs {
		if f != nil {
			out = append(out, f.Source())
		}
	}
	return out
}

// querySource renders a single wrapped query, match_all when nil.
func querySource(q Query) map[string]any {
	if q == nil {
		return NewMatchAllQuery().Source()
	}
	return q.Source()
}

// filterSource renders a single wrapped filter, match_all when nil.
func filterSource(f Filter) map[string]any {
	if f == nil {
		return NewMatchAllFilter().Source()
	}
	return f.Source()
}

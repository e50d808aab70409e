package request

import "github.com/kailas-cloud/esquery/pkg/dsl"

// Request is a finalized, immutable search request: at most one composed
// query and one composed filter plus pagination, score threshold, sorts
// and aggregations.
type Request struct {
	query        dsl.Query
	filter       dsl.Filter
	from         *int
	size         *int
	minScore     *float64
	sorts        []dsl.Sort
	aggregations []dsl.Aggregation
}

// Query returns the composed relevance query (nil when none was registered).
func (r *Request) Query() dsl.Query { return r.query }

// Filter returns the composed filter tree (nil when none was registered).
func (r *Request) Filter() dsl.Filter { return r.filter }

// Root returns the top-level query node: the query and filter united in a
// filtered query when a filter is present, the bare query otherwise, and
// nil when neither exists (the engine then matches all documents).
func (r *Request) Root() dsl.Query {
	if r.filter != nil {
		return dsl.NewFilteredQuery(r.query, r.filter)
	}
	return r.query
}

// From returns the offset of the first hit, if set.
func (r *Request) From() (int, bool) { return derefInt(r.from) }

// Size returns the maximum number of hits, if set.
func (r *Request) Size() (int, bool) { return derefInt(r.size) }

// MinScore returns the minimum score threshold, if set.
func (r *Request) MinScore() (float64, bool) {
	if r.minScore == nil {
		return 0, false
	}
	return *r.minScore, true
}

// Sorts returns a copy of the sort specifications.
func (r *Request) Sorts() []dsl.Sort {
	out := make([]dsl.Sort, len(r.sorts))
	copy(out, r.sorts)
	return out
}

// Aggregations returns a copy of the aggregations.
func (r *Request) Aggregations() []dsl.Aggregation {
	out := make([]dsl.Aggregation, len(r.aggregations))
	copy(out, r.aggregations)
	return out
}

// IsMatchAll reports whether the request has neither query nor filter.
func (r *Request) IsMatchAll() bool { return r.query == nil && r.filter == nil }

// Source renders the engine JSON body. Keys are present only when set:
// query, from, size, min_score, sort, aggs.
func (r *Request) Source() map[string]any {
	body := map[string]any{}
	if root := r.Root(); root != nil {
		body["query"] = root.Source()
	}
	if r.from != nil {
		body["from"] = *r.from
	}
	if r.size != nil {
		body["size"] = *r.size
	}
	if r.minScore != nil {
		body["min_score"] = *r.minScore
	}
	if len(r.sorts) > 0 {
		sorts := make([]any, len(r.sorts))
		for i, s := range r.sorts {
			sorts[i] = s.Source()
		}
		body["sort"] = sorts
	}
	if len(r.aggregations) > 0 {
		aggs := make(map[string]any, len(r.aggregations))
		for _, a := range r.aggregations {
			aggs[a.Name()] = a.Source()
		}
		body["aggs"] = aggs
	}
	return body
}

func derefInt(p *int) (int, bool) {
	if p == nil {
		return 0, false
	}
	return *p, true
}

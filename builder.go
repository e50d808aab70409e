package esquery

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/pkg/dsl"
)

// Request is a composed, immutable search request.
type Request = request.Request

// ErrUnbound is returned by Do on a builder created with NewQuery.
var ErrUnbound = errors.New("esquery: query builder is not bound to an index")

// QueryBuilder accumulates query and filter fragments for one search.
// It is not safe for concurrent use.
type QueryBuilder struct {
	b   *request.Builder
	idx *Index
}

// NewQuery returns a builder that is not bound to a client. Use Build or
// Source to obtain the composed request.
func NewQuery() *QueryBuilder {
	return &QueryBuilder{b: request.NewBuilder()}
}

// Must adds relevance queries. Several queries end up as bool.must clauses.
func (q *QueryBuilder) Must(queries ...dsl.Query) *QueryBuilder {
	for _, query := range queries {
		q.b.AddQuery(query)
	}
	return q
}

// Filter adds filters. Cacheable filters are grouped into one bool filter;
// script, numeric_range and geo filters are chained with "and".
func (q *QueryBuilder) Filter(filters ...dsl.Filter) *QueryBuilder {
	for _, f := range filters {
		q.b.AddFilter(f)
	}
	return q
}

// Sort appends sort keys in priority order.
func (q *QueryBuilder) Sort(sorts ...dsl.Sort) *QueryBuilder {
	for _, s := range sorts {
		q.b.AddSort(s)
	}
	return q
}

// Aggregate adds named aggregations.
func (q *QueryBuilder) Aggregate(aggs ...dsl.Aggregation) *QueryBuilder {
	for _, a := range aggs {
		q.b.AddAggregation(a)
	}
	return q
}

// From sets the offset of the first hit.
func (q *QueryBuilder) From(n int) *QueryBuilder {
	q.b.SetFirstResult(n)
	return q
}

// Size sets the maximum number of hits.
func (q *QueryBuilder) Size(n int) *QueryBuilder {
	q.b.SetMaxResults(n)
	return q
}

// MinScore drops hits scoring below s.
func (q *QueryBuilder) MinScore(s float64) *QueryBuilder {
	q.b.SetMinScore(s)
	return q
}

// Build composes the accumulated fragments. Calling it again returns the
// same request; adding fragments after the first call makes it fail with
// ErrFinalized.
func (q *QueryBuilder) Build() (Request, error) {
	req, err := q.b.Build()
	if err != nil {
		return Request{}, fmt.Errorf("esquery: %w", err)
	}
	return req, nil
}

// Source returns the engine body the request serializes to.
func (q *QueryBuilder) Source() (map[string]any, error) {
	req, err := q.Build()
	if err != nil {
		return nil, err
	}
	return req.Source(), nil
}

// Do builds the request and executes it against the bound index.
func (q *QueryBuilder) Do(ctx context.Context) (*Result, error) {
	if q.idx == nil {
		return nil, ErrUnbound
	}
	req, err := q.idx.client.searchSvc.Compose(q.b)
	if err != nil {
		return nil, fmt.Errorf("esquery: %w", err)
	}
	return q.idx.client.Search(ctx, q.idx.name, req)
}

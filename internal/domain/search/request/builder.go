package request

import (
	"errors"

	"github.com/kailas-cloud/esquery/internal/compose"
	"github.com/kailas-cloud/esquery/pkg/dsl"
)

// ErrFinalized is returned by Build when a fragment or parameter was
// registered after the builder had already been built.
var ErrFinalized = errors.New("request builder already finalized")

// Builder accumulates fragments for one search and finalizes them into a
// Request. It is owned by a single goroutine; calls are not synchronized.
//
// Build may be called repeatedly and returns equal requests as long as
// nothing is registered in between. Registering after Build is rejected:
// the call is dropped and every later Build returns ErrFinalized.
type Builder struct {
	queries      []dsl.Query
	filters      []dsl.Filter
	sorts        []dsl.Sort
	aggregations []dsl.Aggregation
	from         *int
	size         *int
	minScore     *float64

	built bool
	err   error
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{
		queries:      []dsl.Query{},
		filters:      []dsl.Filter{},
		sorts:        []dsl.Sort{},
		aggregations: []dsl.Aggregation{},
	}
}

// AddQuery appends a query fragment. Nil is ignored.
func (b *Builder) AddQuery(q dsl.Query) *Builder {
	if b.mutable() && q != nil {
		b.queries = append(b.queries, q)
	}
	return b
}

// AddFilter appends a filter fragment. Nil is ignored.
func (b *Builder) AddFilter(f dsl.Filter) *Builder {
	if b.mutable() && f != nil {
		b.filters = append(b.filters, f)
	}
	return b
}

// AddSort appends a sort specification. Nil is ignored.
func (b *Builder) AddSort(s dsl.Sort) *Builder {
	if b.mutable() && s != nil {
		b.sorts = append(b.sorts, s)
	}
	return b
}

// AddAggregation appends an aggregation. Nil is ignored.
func (b *Builder) AddAggregation(a dsl.Aggregation) *Builder {
	if b.mutable() && a != nil {
		b.aggregations = append(b.aggregations, a)
	}
	return b
}

// SetFirstResult sets the offset of the first hit. Last write wins.
func (b *Builder) SetFirstResult(n int) *Builder {
	if b.mutable() {
		b.from = &n
	}
	return b
}

// SetMaxResults sets the maximum number of hits. Last write wins.
func (b *Builder) SetMaxResults(n int) *Builder {
	if b.mutable() {
		b.size = &n
	}
	return b
}

// SetMinScore sets the minimum score threshold. Last write wins.
func (b *Builder) SetMinScore(s float64) *Builder {
	if b.mutable() {
		b.minScore = &s
	}
	return b
}

// Filters returns a copy of the registered filters.
func (b *Builder) Filters() []dsl.Filter {
	out := make([]dsl.Filter, len(b.filters))
	copy(out, b.filters)
	return out
}

// Queries returns a copy of the registered queries.
func (b *Builder) Queries() []dsl.Query {
	out := make([]dsl.Query, len(b.queries))
	copy(out, b.queries)
	return out
}

// Build composes the registered fragments into a Request.
func (b *Builder) Build() (Request, error) {
	if b.err != nil {
		return Request{}, b.err
	}
	b.built = true

	req := Request{
		query:        compose.Queries(b.queries),
		filter:       compose.Filters(b.filters),
		sorts:        make([]dsl.Sort, len(b.sorts)),
		aggregations: make([]dsl.Aggregation, len(b.aggregations)),
	}
	copy(req.sorts, b.sorts)
	copy(req.aggregations, b.aggregations)
	if b.from != nil {
		from := *b.from
		req.from = &from
	}
	if b.size != nil {
		size := *b.size
		req.size = &size
	}
	if b.minScore != nil {
		ms := *b.minScore
		req.minScore = &ms
	}
	return req, nil
}

func (b *Builder) mutable() bool {
	if b.built {
		b.err = ErrFinalized
		return false
	}
	return true
}

package dsl

// MatchAllQuery matches every document.
type MatchAllQuery struct {
	boost *float64
}

// NewMatchAllQuery creates a match_all query.
func NewMatchAllQuery() *MatchAllQuery { return &MatchAllQuery{} }

// Boost sets the query boost.
func (q *MatchAllQuery) Boost(b float64) *MatchAllQuery {
	q.boost = &b
	return q
}

// Source renders the query body.
func (q *MatchAllQuery) Source() map[string]any {
	params := map[string]any{}
	if q.boost != nil {
		params["boost"] = *q.boost
	}
	return map[string]any{"match_all": params}
}

// MatchQuery is a full-text match on a single field.
type MatchQuery struct {
	field    string
	text     any
	operator string
	analyzer string
	boost    *float64
}

// NewMatchQuery creates a match query.
func NewMatchQuery(field string, text any) *MatchQuery {
	return &MatchQuery{field: field, text: text}
}

// Operator sets the boolean operator between analyzed terms ("and" / "or").
func (q *MatchQuery) Operator(op string) *MatchQuery {
	q.operator = op
	return q
}

// Analyzer sets the search analyzer.
func (q *MatchQuery) Analyzer(a string) *MatchQuery {
	q.analyzer = a
	return q
}

// Boost sets the query boost.
func (q *MatchQuery) Boost(b float64) *MatchQuery {
	q.boost = &b
	return q
}

// Source renders the query body.
func (q *MatchQuery) Source() map[string]any {
	if q.operator == "" && q.analyzer == "" && q.boost == nil {
		return map[string]any{"match": map[string]any{q.field: q.text}}
	}
	params := map[string]any{"query": q.text}
	if q.operator != "" {
		params["operator"] = q.operator
	}
	if q.analyzer != "" {
		params["analyzer"] = q.analyzer
	}
	if q.boost != nil {
		params["boost"] = *q.boost
	}
	return map[string]any{"match": map[string]any{q.field: params}}
}

// MultiMatchQuery is a full-text match across several fields.
type MultiMatchQuery struct {
	text      any
	fields    []string
	matchType string
}

// NewMultiMatchQuery creates a multi_match query.
func NewMultiMatchQuery(text any, fields ...string) *MultiMatchQuery {
	return &MultiMatchQuery{text: text, fields: fields}
}

// Type sets the multi_match type (best_fields, most_fields, cross_fields, phrase).
func (q *MultiMatchQuery) Type(t string) *MultiMatchQuery {
	q.matchType = t
	return q
}

// Source renders the query body.
func (q *MultiMatchQuery) Source() map[string]any {
	fields := make([]string, len(q.fields))
	copy(fields, q.fields)
	params := map[string]any{"query": q.text, "fields": fields}
	if q.matchType != "" {
		params["type"] = q.matchType
	}
	return map[string]any{"multi_match": params}
}

// TermQuery matches an exact, non-analyzed value.
type TermQuery struct {
	field string
	value any
}

// NewTermQuery creates a term query.
func NewTermQuery(field string, value any) *TermQuery {
	return &TermQuery{field: field, value: value}
}

// Source renders the query body.
func (q *TermQuery) Source() map[string]any {
	return map[string]any{"term": map[string]any{q.field: q.value}}
}

// TermsQuery matches any of the given exact values.
type TermsQuery struct {
	field  string
	values []any
}

// NewTermsQuery creates a terms query.
func NewTermsQuery(field string, values ...any) *TermsQuery {
	return &TermsQuery{field: field, values: values}
}

// Source renders the query body.
func (q *TermsQuery) Source() map[string]any {
	values := make([]any, len(q.values))
	copy(values, q.values)
	return map[string]any{"terms": map[string]any{q.field: values}}
}

// RangeQuery matches values inside a range.
type RangeQuery struct {
	field  string
	bounds bounds
}

// NewRangeQuery creates a range query on field.
func NewRangeQuery(field string) *RangeQuery { return &RangeQuery{field: field} }

// Gt sets the exclusive lower bound.
func (q *RangeQuery) Gt(v any) *RangeQuery {
	q.bounds.gt = v
	return q
}

// Gte sets the inclusive lower bound.
func (q *RangeQuery) Gte(v any) *RangeQuery {
	q.bounds.gte = v
	return q
}

// Lt sets the exclusive upper bound.
func (q *RangeQuery) Lt(v any) *RangeQuery {
	q.bounds.lt = v
	return q
}

// Lte sets the inclusive upper bound.
func (q *RangeQuery) Lte(v any) *RangeQuery {
	q.bounds.lte = v
	return q
}

// Source renders the query body.
func (q *RangeQuery) Source() map[string]any {
	return map[string]any{"range": map[string]any{q.field: q.bounds.source()}}
}

// QueryStringQuery runs a Lucene query string.
type QueryStringQuery struct {
	query           string
	defaultField    string
	defaultOperator string
	fields          []string
}

// NewQueryStringQuery creates a query_string query.
func NewQueryStringQuery(query string) *QueryStringQuery {
	return &QueryStringQuery{query: query}
}

// DefaultField sets the field searched when none is named in the string.
func (q *QueryStringQuery) DefaultField(f string) *QueryStringQuery {
	q.defaultField = f
	return q
}

// DefaultOperator sets the implicit operator ("AND" / "OR").
func (q *QueryStringQuery) DefaultOperator(op string) *QueryStringQuery {
	q.defaultOperator = op
	return q
}

// Fields restricts the search to the given fields.
func (q *QueryStringQuery) Fields(fields ...string) *QueryStringQuery {
	q.fields = append(q.fields, fields...)
	return q
}

// Source renders the query body.
func (q *QueryStringQuery) Source() map[string]any {
	params := map[string]any{"query": q.query}
	if q.defaultField != "" {
		params["default_field"] = q.defaultField
	}
	if q.defaultOperator != "" {
		params["default_operator"] = q.defaultOperator
	}
	if len(q.fields) > 0 {
		fields := make([]string, len(q.fields))
		copy(fields, q.fields)
		params["fields"] = fields
	}
	return map[string]any{"query_string": params}
}

// PrefixQuery matches terms starting with a prefix.
type PrefixQuery struct {
	field  string
	prefix string
}

// NewPrefixQuery creates a prefix query.
func NewPrefixQuery(field, prefix string) *PrefixQuery {
	return &PrefixQuery{field: field, prefix: prefix}
}

// Source renders the query body.
func (q *PrefixQuery) Source() map[string]any {
	return map[string]any{"prefix": map[string]any{q.field: q.prefix}}
}

// IdsQuery matches documents by identifier.
type IdsQuery struct {
	ids []string
}

// NewIdsQuery creates an ids query.
func NewIdsQuery(ids ...string) *IdsQuery { return &IdsQuery{ids: ids} }

// Source renders the query body.
func (q *IdsQuery) Source() map[string]any {
	ids := make([]string, len(q.ids))
	copy(ids, q.ids)
	return map[string]any{"ids": map[string]any{"values": ids}}
}

// BoolQuery combines queries with must/should/must_not clauses.
type BoolQuery struct {
	must    []Query
	should  []Query
	mustNot []Query
}

// NewBoolQuery creates an empty bool query.
func NewBoolQuery() *BoolQuery { return &BoolQuery{} }

// Must appends clauses that must match.
func (q *BoolQuery) Must(qs ...Query) *BoolQuery {
	q.must = append(q.must, qs...)
	return q
}

// Should appends optional clauses.
func (q *BoolQuery) Should(qs ...Query) *BoolQuery {
	q.should = append(q.should, qs...)
	return q
}

// MustNot appends clauses that must not match.
func (q *BoolQuery) MustNot(qs ...Query) *BoolQuery {
	q.mustNot = append(q.mustNot, qs...)
	return q
}

// MustClauses returns a copy of the must clauses.
func (q *BoolQuery) MustClauses() []Query {
	out := make([]Query, len(q.must))
	copy(out, q.must)
	return out
}

// Source renders the query body. Empty clause lists are omitted.
func (q *BoolQuery) Source() map[string]any {
	params := map[string]any{}
	if len(q.must) > 0 {
		params["must"] = querySources(q.must)
	}
	if len(q.should) > 0 {
		params["should"] = querySources(q.should)
	}
	if len(q.mustNot) > 0 {
		params["must_not"] = querySources(q.mustNot)
	}
	return map[string]any{"bool": params}
}

// FilteredQuery unites a relevance query with a boolean filter.
// A nil query leaves the engine to match all documents.
type FilteredQuery struct {
	query  Query
	filter Filter
}

// NewFilteredQuery creates a filtered query. Either argument may be nil.
func NewFilteredQuery(query Query, filter Filter) *FilteredQuery {
	return &FilteredQuery{query: query, filter: filter}
}

// Query returns the wrapped relevance query (nil when absent).
func (q *FilteredQuery) Query() Query { return q.query }

// Filter returns the wrapped filter (nil when absent).
func (q *FilteredQuery) Filter() Filter { return q.filter }

// Source renders the query body.
func (q *FilteredQuery) Source() map[string]any {
	params := map[string]any{}
	if q.query != nil {
		params["query"] = q.query.Source()
	}
	if q.filter != nil {
		params["filter"] = q.filter.Source()
	}
	return map[string]any{"filtered": params}
}

// ConstantScoreQuery scores every document matched by a filter equally.
type ConstantScoreQuery struct {
	filter Filter
	boost  *float64
}

// NewConstantScoreQuery creates a constant_score query over filter. A nil
// filter renders as match_all.
func NewConstantScoreQuery(filter Filter) *ConstantScoreQuery {
	return &ConstantScoreQuery{filter: filter}
}

// Boost sets the constant score.
func (q *ConstantScoreQuery) Boost(b float64) *ConstantScoreQuery {
	q.boost = &b
	return q
}

// Source renders the query body.
func (q *ConstantScoreQuery) Source() map[string]any {
	params := map[string]any{"filter": filterSource(q.filter)}
	if q.boost != nil {
		params["boost"] = *q.boost
	}
	return map[string]any{"constant_score": params}
}

type bounds struct {
	gt, gte, lt, lte any
}

func (b bounds) source() map[string]any {
	out := map[string]any{}
	if b.gt != nil {
		out["gt"] = b.gt
	}
	if b.gte != nil {
		out["gte"] = b.gte
	}
	if b.lt != nil {
		out["lt"] = b.lt
	}
	if b.lte != nil {
		out["lte"] = b.lte
	}
	return out
}

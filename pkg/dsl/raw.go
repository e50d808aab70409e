package dsl

import (
	"strings"
	"unicode"
)

// RawQuery is a query given as its JSON body, e.g. decoded from a request
// document. Body must have exactly one top-level key naming the query type.
type RawQuery struct {
	kind string
	body any
}

// NewRawQuery creates a raw query of the given wire type ("match", "bool").
func NewRawQuery(kind string, body any) *RawQuery {
	return &RawQuery{kind: kind, body: body}
}

// Kind returns the wire type key.
func (q *RawQuery) Kind() string { return q.kind }

// Source renders the query body.
func (q *RawQuery) Source() map[string]any {
	return map[string]any{q.kind: q.body}
}

// RawFilter is a filter given as its JSON body. Its FilterType is derived
// from the wire key: "geo_distance" declares "GeoDistance".
type RawFilter struct {
	kind string
	body any
}

// NewRawFilter creates a raw filter of the given wire type.
func NewRawFilter(kind string, body any) *RawFilter {
	return &RawFilter{kind: kind, body: body}
}

// Kind returns the wire type key.
func (f *RawFilter) Kind() string { return f.kind }

// FilterType returns the wire key in CamelCase.
func (f *RawFilter) FilterType() string { return TypeName(f.kind) }

// Source renders the filter body.
func (f *RawFilter) Source() map[string]any {
	return map[string]any{f.kind: f.body}
}

// TypeName converts a snake_case wire key into the CamelCase type name
// declared by the matching filter type ("numeric_range" -> "NumericRange").
// The "and"/"or" keys map to "BoolAnd"/"BoolOr".
func TypeName(kind string) string {
	switch kind {
	case "and":
		return "BoolAnd"
	case "or":
		return "BoolOr"
	}
	var b strings.Builder
	b.Grow(len(kind))
	upper := true
	for _, r := range kind {
		if r == '_' {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

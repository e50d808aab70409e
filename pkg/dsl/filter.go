package dsl

// filterOpts carries the _cache / _name settings shared by leaf filters.
type filterOpts struct {
	cache *bool
	name  string
}

func (o filterOpts) apply(params map[string]any) map[string]any {
	if o.cache != nil {
		params["_cache"] = *o.cache
	}
	if o.name != "" {
		params["_name"] = o.name
	}
	return params
}

// TermFilter matches documents with an exact field value.
type TermFilter struct {
	field string
	value any
	opts  filterOpts
}

// NewTermFilter creates a term filter.
func NewTermFilter(field string, value any) *TermFilter {
	return &TermFilter{field: field, value: value}
}

// Cache controls bitset caching of this filter.
func (f *TermFilter) Cache(c bool) *TermFilter {
	f.opts.cache = &c
	return f
}

// Named sets the filter name reported in matched_filters.
func (f *TermFilter) Named(n string) *TermFilter {
	f.opts.name = n
	return f
}

// FilterType returns "Term".
func (f *TermFilter) FilterType() string { return "Term" }

// Source renders the filter body.
func (f *TermFilter) Source() map[string]any {
	return map[string]any{"term": f.opts.apply(map[string]any{f.field: f.value})}
}

// TermsFilter matches documents having any of the given values.
type TermsFilter struct {
	field     string
	values    []any
	execution string
	opts      filterOpts
}

// NewTermsFilter creates a terms filter.
func NewTermsFilter(field string, values ...any) *TermsFilter {
	return &TermsFilter{field: field, values: values}
}

// Execution sets the execution mode (plain, bool, and, or, ...).
func (f *TermsFilter) Execution(e string) *TermsFilter {
	f.execution = e
	return f
}

// Cache controls bitset caching of this filter.
func (f *TermsFilter) Cache(c bool) *TermsFilter {
	f.opts.cache = &c
	return f
}

// FilterType returns "Terms".
func (f *TermsFilter) FilterType() string { return "Terms" }

// Source renders the filter body.
func (f *TermsFilter) Source() map[string]any {
	values := make([]any, len(f.values))
	copy(values, f.values)
	params := map[string]any{f.field: values}
	if f.execution != "" {
		params["execution"] = f.execution
	}
	return map[string]any{"terms": f.opts.apply(params)}
}

// RangeFilter matches values inside a range.
type RangeFilter struct {
	field  string
	bounds bounds
	opts   filterOpts
}

// NewRangeFilter creates a range filter on field.
func NewRangeFilter(field string) *RangeFilter { return &RangeFilter{field: field} }

// Gt sets the exclusive lower bound.
func (f *RangeFilter) Gt(v any) *RangeFilter {
	f.bounds.gt = v
	return f
}

// Gte sets the inclusive lower bound.
func (f *RangeFilter) Gte(v any) *RangeFilter {
	f.bounds.gte = v
	return f
}

// Lt sets the exclusive upper bound.
func (f *RangeFilter) Lt(v any) *RangeFilter {
	f.bounds.lt = v
	return f
}

// Lte sets the inclusive upper bound.
func (f *RangeFilter) Lte(v any) *RangeFilter {
	f.bounds.lte = v
	return f
}

// FilterType returns "Range".
func (f *RangeFilter) FilterType() string { return "Range" }

// Source renders the filter body.
func (f *RangeFilter) Source() map[string]any {
	return map[string]any{"range": f.opts.apply(map[string]any{f.field: f.bounds.source()})}
}

// NumericRangeFilter is a range filter evaluated against field data
// instead of the term index. It is not cached as a bitset.
type NumericRangeFilter struct {
	field  string
	bounds bounds
}

// NewNumericRangeFilter creates a numeric_range filter on field.
func NewNumericRangeFilter(field string) *NumericRangeFilter {
	return &NumericRangeFilter{field: field}
}

// Gt sets the exclusive lower bound.
func (f *NumericRangeFilter) Gt(v any) *NumericRangeFilter {
	f.bounds.gt = v
	return f
}

// Gte sets the inclusive lower bound.
func (f *NumericRangeFilter) Gte(v any) *NumericRangeFilter {
	f.bounds.gte = v
	return f
}

// Lt sets the exclusive upper bound.
func (f *NumericRangeFilter) Lt(v any) *NumericRangeFilter {
	f.bounds.lt = v
	return f
}

// Lte sets the inclusive upper bound.
func (f *NumericRangeFilter) Lte(v any) *NumericRangeFilter {
	f.bounds.lte = v
	return f
}

// FilterType returns "NumericRange".
func (f *NumericRangeFilter) FilterType() string { return "NumericRange" }

// Source renders the filter body.
func (f *NumericRangeFilter) Source() map[string]any {
	return map[string]any{"numeric_range": map[string]any{f.field: f.bounds.source()}}
}

// ExistsFilter matches documents where field has a value.
type ExistsFilter struct {
	field string
}

// NewExistsFilter creates an exists filter.
func NewExistsFilter(field string) *ExistsFilter { return &ExistsFilter{field: field} }

// FilterType returns "Exists".
func (f *ExistsFilter) FilterType() string { return "Exists" }

// Source renders the filter body.
func (f *ExistsFilter) Source() map[string]any {
	return map[string]any{"exists": map[string]any{"field": f.field}}
}

// MissingFilter matches documents where field has no value.
type MissingFilter struct {
	field string
}

// NewMissingFilter creates a missing filter.
func NewMissingFilter(field string) *MissingFilter { return &MissingFilter{field: field} }

// FilterType returns "Missing".
func (f *MissingFilter) FilterType() string { return "Missing" }

// Source renders the filter body.
func (f *MissingFilter) Source() map[string]any {
	return map[string]any{"missing": map[string]any{"field": f.field}}
}

// IdsFilter matches documents by identifier.
type IdsFilter struct {
	docType string
	ids     []string
}

// NewIdsFilter creates an ids filter.
func NewIdsFilter(ids ...string) *IdsFilter { return &IdsFilter{ids: ids} }

// Type restricts the filter to a document type.
func (f *IdsFilter) Type(t string) *IdsFilter {
	f.docType = t
	return f
}

// FilterType returns "Ids".
func (f *IdsFilter) FilterType() string { return "Ids" }

// Source renders the filter body.
func (f *IdsFilter) Source() map[string]any {
	ids := make([]string, len(f.ids))
	copy(ids, f.ids)
	params := map[string]any{"values": ids}
	if f.docType != "" {
		params["type"] = f.docType
	}
	return map[string]any{"ids": params}
}

// PrefixFilter matches terms starting with a prefix.
type PrefixFilter struct {
	field  string
	prefix string
}

// NewPrefixFilter creates a prefix filter.
func NewPrefixFilter(field, prefix string) *PrefixFilter {
	return &PrefixFilter{field: field, prefix: prefix}
}

// FilterType returns "Prefix".
func (f *PrefixFilter) FilterType() string { return "Prefix" }

// Source renders the filter body.
func (f *PrefixFilter) Source() map[string]any {
	return map[string]any{"prefix": map[string]any{f.field: f.prefix}}
}

// RegexpFilter matches terms against a regular expression.
type RegexpFilter struct {
	field  string
	regexp string
}

// NewRegexpFilter creates a regexp filter.
func NewRegexpFilter(field, regexp string) *RegexpFilter {
	return &RegexpFilter{field: field, regexp: regexp}
}

// FilterType returns "Regexp".
func (f *RegexpFilter) FilterType() string { return "Regexp" }

// Source renders the filter body.
func (f *RegexpFilter) Source() map[string]any {
	return map[string]any{"regexp": map[string]any{f.field: f.regexp}}
}

// TypeFilter matches documents of a mapping type.
type TypeFilter struct {
	docType string
}

// NewTypeFilter creates a type filter.
func NewTypeFilter(docType string) *TypeFilter { return &TypeFilter{docType: docType} }

// FilterType returns "Type".
func (f *TypeFilter) FilterType() string { return "Type" }

// Source renders the filter body.
func (f *TypeFilter) Source() map[string]any {
	return map[string]any{"type": map[string]any{"value": f.docType}}
}

// QueryFilter turns a query into a filter, dropping its score.
type QueryFilter struct {
	query Query
}

// NewQueryFilter wraps query as a filter.
func NewQueryFilter(query Query) *QueryFilter { return &QueryFilter{query: query} }

// FilterType returns "Query".
func (f *QueryFilter) FilterType() string { return "Query" }

// Source renders the filter body.
func (f *QueryFilter) Source() map[string]any {
	return map[string]any{"query": querySource(f.query)}
}

// NotFilter negates a filter.
type NotFilter struct {
	filter Filter
}

// NewNotFilter creates a not filter.
func NewNotFilter(filter Filter) *NotFilter { return &NotFilter{filter: filter} }

// FilterType returns "Not".
func (f *NotFilter) FilterType() string { return "Not" }

// Source renders the filter body.
func (f *NotFilter) Source() map[string]any {
	return map[string]any{"not": map[string]any{"filter": filterSource(f.filter)}}
}

// ScriptFilter evaluates a script per document.
type ScriptFilter struct {
	script string
	lang   string
	params map[string]any
}

// NewScriptFilter creates a script filter.
func NewScriptFilter(script string) *ScriptFilter { return &ScriptFilter{script: script} }

// Lang sets the script language.
func (f *ScriptFilter) Lang(l string) *ScriptFilter {
	f.lang = l
	return f
}

// Param sets a script parameter.
func (f *ScriptFilter) Param(name string, value any) *ScriptFilter {
	if f.params == nil {
		f.params = map[string]any{}
	}
	f.params[name] = value
	return f
}

// FilterType returns "Script".
func (f *ScriptFilter) FilterType() string { return "Script" }

// Source renders the filter body.
func (f *ScriptFilter) Source() map[string]any {
	params := map[string]any{"script": f.script}
	if f.lang != "" {
		params["lang"] = f.lang
	}
	if len(f.params) > 0 {
		p := make(map[string]any, len(f.params))
		for k, v := range f.params {
			p[k] = v
		}
		params["params"] = p
	}
	return map[string]any{"script": params}
}

// GeoPoint is a latitude/longitude pair.
type GeoPoint struct {
	Lat float64
	Lon float64
}

func (p GeoPoint) source() map[string]any {
	return map[string]any{"lat": p.Lat, "lon": p.Lon}
}

// GeoDistanceFilter matches documents within a distance of a point.
type GeoDistanceFilter struct {
	field    string
	point    GeoPoint
	distance string
	distType string
}

// NewGeoDistanceFilter creates a geo_distance filter. distance uses engine
// units, e.g. "10km".
func NewGeoDistanceFilter(field string, lat, lon float64, distance string) *GeoDistanceFilter {
	return &GeoDistanceFilter{field: field, point: GeoPoint{Lat: lat, Lon: lon}, distance: distance}
}

// DistanceType sets the computation method (arc, plane, sloppy_arc).
func (f *GeoDistanceFilter) DistanceType(t string) *GeoDistanceFilter {
	f.distType = t
	return f
}

// FilterType returns "GeoDistance".
func (f *GeoDistanceFilter) FilterType() string { return "GeoDistance" }

// Source renders the filter body.
func (f *GeoDistanceFilter) Source() map[string]any {
	params := map[string]any{"distance": f.distance, f.field: f.point.source()}
	if f.distType != "" {
		params["distance_type"] = f.distType
	}
	return map[string]any{"geo_distance": params}
}

// GeoDistanceRangeFilter matches documents within a ring around a point.
type GeoDistanceRangeFilter struct {
	field string
	point GeoPoint
	from  string
	to    string
}

// NewGeoDistanceRangeFilter creates a geo_distance_range filter.
func NewGeoDistanceRangeFilter(field string, lat, lon float64, from, to string) *GeoDistanceRangeFilter {
	return &GeoDistanceRangeFilter{field: field, point: GeoPoint{Lat: lat, Lon: lon}, from: from, to: to}
}

// FilterType returns "GeoDistanceRange".
func (f *GeoDistanceRangeFilter) FilterType() string { return "GeoDistanceRange" }

// Source renders the filter body.
func (f *GeoDistanceRangeFilter) Source() map[string]any {
	params := map[string]any{f.field: f.point.source()}
	if f.from != "" {
		params["from"] = f.from
	}
	if f.to != "" {
		params["to"] = f.to
	}
	return map[string]any{"geo_distance_range": params}
}

// GeoBoundingBoxFilter matches documents inside a box.
type GeoBoundingBoxFilter struct {
	field       string
	topLeft     GeoPoint
	bottomRight GeoPoint
}

// NewGeoBoundingBoxFilter creates a geo_bounding_box filter.
func NewGeoBoundingBoxFilter(field string, topLeft, bottomRight GeoPoint) *GeoBoundingBoxFilter {
	return &GeoBoundingBoxFilter{field: field, topLeft: topLeft, bottomRight: bottomRight}
}

// FilterType returns "GeoBoundingBox".
func (f *GeoBoundingBoxFilter) FilterType() string { return "GeoBoundingBox" }

// Source renders the filter body.
func (f *GeoBoundingBoxFilter) Source() map[string]any {
	return map[string]any{"geo_bounding_box": map[string]any{
		f.field: map[string]any{
			"top_left":     f.topLeft.source(),
			"bottom_right": f.bottomRight.source(),
		},
	}}
}

// GeoPolygonFilter matches documents inside a polygon.
type GeoPolygonFilter struct {
	field  string
	points []GeoPoint
}

// NewGeoPolygonFilter creates a geo_polygon filter.
func NewGeoPolygonFilter(field string, points ...GeoPoint) *GeoPolygonFilter {
	return &GeoPolygonFilter{field: field, points: points}
}

// FilterType returns "GeoPolygon".
func (f *GeoPolygonFilter) FilterType() string { return "GeoPolygon" }

// Source renders the filter body.
func (f *GeoPolygonFilter) Source() map[string]any {
	points := make([]any, len(f.points))
	for i, p := range f.points {
		points[i] = p.source()
	}
	return map[string]any{"geo_polygon": map[string]any{
		f.field: map[string]any{"points": points},
	}}
}

// MatchAllFilter matches every document.
type MatchAllFilter struct{}

// NewMatchAllFilter creates a match_all filter.
func NewMatchAllFilter() *MatchAllFilter { return &MatchAllFilter{} }

// FilterType returns "MatchAll".
func (f *MatchAllFilter) FilterType() string { return "MatchAll" }

// Source renders the filter body.
func (f *MatchAllFilter) Source() map[string]any {
	return map[string]any{"match_all": map[string]any{}}
}

// BoolFilter combines filters with must/should/must_not clauses. The engine
// caches the clause bitsets and combines them cheaply.
type BoolFilter struct {
	must    []Filter
	should  []Filter
	mustNot []Filter
	opts    filterOpts
}

// NewBoolFilter creates an empty bool filter.
func NewBoolFilter() *BoolFilter { return &BoolFilter{} }

// Must appends clauses that must match.
func (f *BoolFilter) Must(fs ...Filter) *BoolFilter {
	f.must = append(f.must, fs...)
	return f
}

// Should appends clauses of which at least one must match.
func (f *BoolFilter) Should(fs ...Filter) *BoolFilter {
	f.should = append(f.should, fs...)
	return f
}

// MustNot appends clauses that must not match.
func (f *BoolFilter) MustNot(fs ...Filter) *BoolFilter {
	f.mustNot = append(f.mustNot, fs...)
	return f
}

// Cache controls caching of the combined result.
func (f *BoolFilter) Cache(c bool) *BoolFilter {
	f.opts.cache = &c
	return f
}

// MustClauses returns a copy of the must clauses.
func (f *BoolFilter) MustClauses() []Filter {
	out := make([]Filter, len(f.must))
	copy(out, f.must)
	return out
}

// FilterType returns "Bool".
func (f *BoolFilter) FilterType() string { return "Bool" }

// Source renders the filter body. Empty clause lists are omitted.
func (f *BoolFilter) Source() map[string]any {
	params := map[string]any{}
	if len(f.must) > 0 {
		params["must"] = filterSources(f.must)
	}
	if len(f.should) > 0 {
		params["should"] = filterSources(f.should)
	}
	if len(f.mustNot) > 0 {
		params["must_not"] = filterSources(f.mustNot)
	}
	return map[string]any{"bool": f.opts.apply(params)}
}

// AndFilter applies filters one after another, short-circuiting per
// document. It suits filters that cannot be cached as bitsets.
type AndFilter struct {
	filters []Filter
}

// NewAndFilter creates an and filter.
func NewAndFilter(filters ...Filter) *AndFilter { return &AndFilter{filters: filters} }

// Add appends filters.
func (f *AndFilter) Add(fs ...Filter) *AndFilter {
	f.filters = append(f.filters, fs...)
	return f
}

// Filters returns a copy of the chained filters.
func (f *AndFilter) Filters() []Filter {
	out := make([]Filter, len(f.filters))
	copy(out, f.filters)
	return out
}

// FilterType returns "BoolAnd".
func (f *AndFilter) FilterType() string { return "BoolAnd" }

// Source renders the filter body.
func (f *AndFilter) Source() map[string]any {
	return map[string]any{"and": map[string]any{"filters": filterSources(f.filters)}}
}

// OrFilter matches documents matching any of the filters.
type OrFilter struct {
	filters []Filter
}

// NewOrFilter creates an or filter.
func NewOrFilter(filters ...Filter) *OrFilter { return &OrFilter{filters: filters} }

// FilterType returns "BoolOr".
func (f *OrFilter) FilterType() string { return "BoolOr" }

// Source renders the filter body.
func (f *OrFilter) Source() map[string]any {
	return map[string]any{"or": map[string]any{"filters": filterSources(f.filters)}}
}

package dsl

// subAggs holds nested aggregations in registration order.
type subAggs []Aggregation

func (s subAggs) apply(body map[string]any) map[string]any {
	if len(s) == 0 {
		return body
	}
	nested := make(map[string]any, len(s))
	for _, a := range s {
		nested[a.Name()] = a.Source()
	}
	body["aggs"] = nested
	return body
}

// TermsAggregation buckets documents by distinct field values.
type TermsAggregation struct {
	name  string
	field string
	size  *int
	order map[string]any
	subs  subAggs
}

// NewTermsAggregation creates a terms aggregation.
func NewTermsAggregation(name, field string) *TermsAggregation {
	return &TermsAggregation{name: name, field: field}
}

// Size sets the number of buckets returned.
func (a *TermsAggregation) Size(n int) *TermsAggregation {
	a.size = &n
	return a
}

// Order sets the bucket order, e.g. Order("_count", "desc").
func (a *TermsAggregation) Order(key, dir string) *TermsAggregation {
	a.order = map[string]any{key: dir}
	return a
}

// SubAggregation nests an aggregation under each bucket.
func (a *TermsAggregation) SubAggregation(sub Aggregation) *TermsAggregation {
	a.subs = append(a.subs, sub)
	return a
}

// Name returns the aggregation name.
func (a *TermsAggregation) Name() string { return a.name }

// Source renders the aggregation body.
func (a *TermsAggregation) Source() map[string]any {
	params := map[string]any{"field": a.field}
	if a.size != nil {
		params["size"] = *a.size
	}
	if a.order != nil {
		params["order"] = a.order
	}
	return a.subs.apply(map[string]any{"terms": params})
}

// MetricAggregation computes a single-value metric (avg, sum, min, max,
// cardinality, value_count) over a field.
type MetricAggregation struct {
	name   string
	metric string
	field  string
}

// NewAvgAggregation creates an avg aggregation.
func NewAvgAggregation(name, field string) *MetricAggregation {
	return &MetricAggregation{name: name, metric: "avg", field: field}
}

// NewSumAggregation creates a sum aggregation.
func NewSumAggregation(name, field string) *MetricAggregation {
	return &MetricAggregation{name: name, metric: "sum", field: field}
}

// NewMinAggregation creates a min aggregation.
func NewMinAggregation(name, field string) *MetricAggregation {
	return &MetricAggregation{name: name, metric: "min", field: field}
}

// NewMaxAggregation creates a max aggregation.
func NewMaxAggregation(name, field string) *MetricAggregation {
	return &MetricAggregation{name: name, metric: "max", field: field}
}

// NewCardinalityAggregation creates a cardinality aggregation.
func NewCardinalityAggregation(name, field string) *MetricAggregation {
	return &MetricAggregation{name: name, metric: "cardinality", field: field}
}

// NewValueCountAggregation creates a value_count aggregation.
func NewValueCountAggregation(name, field string) *MetricAggregation {
	return &MetricAggregation{name: name, metric: "value_count", field: field}
}

// Name returns the aggregation name.
func (a *MetricAggregation) Name() string { return a.name }

// Source renders the aggregation body.
func (a *MetricAggregation) Source() map[string]any {
	return map[string]any{a.metric: map[string]any{"field": a.field}}
}

// HistogramAggregation buckets numeric values into fixed intervals.
type HistogramAggregation struct {
	name        string
	field       string
	interval    float64
	minDocCount *int
	subs        subAggs
}

// NewHistogramAggregation creates a histogram aggregation.
func NewHistogramAggregation(name, field string, interval float64) *HistogramAggregation {
	return &HistogramAggregation{name: name, field: field, interval: interval}
}

// MinDocCount hides buckets with fewer documents.
func (a *HistogramAggregation) MinDocCount(n int) *HistogramAggregation {
	a.minDocCount = &n
	return a
}

// SubAggregation nests an aggregation under each bucket.
func (a *HistogramAggregation) SubAggregation(sub Aggregation) *HistogramAggregation {
	a.subs = append(a.subs, sub)
	return a
}

// Name returns the aggregation name.
func (a *HistogramAggregation) Name() string { return a.name }

// Source renders the aggregation body.
func (a *HistogramAggregation) Source() map[string]any {
	params := map[string]any{"field": a.field, "interval": a.interval}
	if a.minDocCount != nil {
		params["min_doc_count"] = *a.minDocCount
	}
	return a.subs.apply(map[string]any{"histogram": params})
}

// DateHistogramAggregation buckets dates into calendar intervals.
type DateHistogramAggregation struct {
	name     string
	field    string
	interval string
	format   string
	subs     subAggs
}

// NewDateHistogramAggregation creates a date_histogram aggregation;
// interval is an engine expression such as "day" or "1h".
func NewDateHistogramAggregation(name, field, interval string) *DateHistogramAggregation {
	return &DateHistogramAggregation{name: name, field: field, interval: interval}
}

// Format sets the bucket key format.
func (a *DateHistogramAggregation) Format(f string) *DateHistogramAggregation {
	a.format = f
	return a
}

// SubAggregation nests an aggregation under each bucket.
func (a *DateHistogramAggregation) SubAggregation(sub Aggregation) *DateHistogramAggregation {
	a.subs = append(a.subs, sub)
	return a
}

// Name returns the aggregation name.
func (a *DateHistogramAggregation) Name() string { return a.name }

// Source renders the aggregation body.
func (a *DateHistogramAggregation) Source() map[string]any {
	params := map[string]any{"field": a.field, "interval": a.interval}
	if a.format != "" {
		params["format"] = a.format
	}
	return a.subs.apply(map[string]any{"date_histogram": params})
}

// FilterAggregation narrows the aggregation context to documents matching
// a filter.
type FilterAggregation struct {
	name   string
	filter Filter
	subs   subAggs
}

// NewFilterAggregation creates a filter aggregation.
func NewFilterAggregation(name string, filter Filter) *FilterAggregation {
	return &FilterAggregation{name: name, filter: filter}
}

// SubAggregation nests an aggregation under the filtered bucket.
func (a *FilterAggregation) SubAggregation(sub Aggregation) *FilterAggregation {
	a.subs = append(a.subs, sub)
	return a
}

// Name returns the aggregation name.
func (a *FilterAggregation) Name() string { return a.name }

// Source renders the aggregation body.
func (a *FilterAggregation) Source() map[string]any {
	return a.subs.apply(map[string]any{"filter": filterSource(a.filter)})
}

// RawAggregation is an aggregation given as its JSON body.
type RawAggregation struct {
	name string
	body map[string]any
}

// NewRawAggregation wraps a decoded aggregation body.
func NewRawAggregation(name string, body map[string]any) *RawAggregation {
	return &RawAggregation{name: name, body: body}
}

// Name returns the aggregation name.
func (a *RawAggregation) Name() string { return a.name }

// Source returns the wrapped body.
func (a *RawAggregation) Source() map[string]any { return a.body }

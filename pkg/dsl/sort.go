package dsl

// Sort orders.
const (
	Asc  = "asc"
	Desc = "desc"
)

// FieldSort orders hits by a field value.
type FieldSort struct {
	field   string
	order   string
	missing any
	mode    string
}

// NewFieldSort creates a sort on field with the engine's default order.
func NewFieldSort(field string) *FieldSort { return &FieldSort{field: field} }

// Asc sorts ascending.
func (s *FieldSort) Asc() *FieldSort {
	s.order = Asc
	return s
}

// Desc sorts descending.
func (s *FieldSort) Desc() *FieldSort {
	s.order = Desc
	return s
}

// Missing sets the placement of documents without the field ("_last", "_first" or a value).
func (s *FieldSort) Missing(v any) *FieldSort {
	s.missing = v
	return s
}

// Mode sets how multi-valued fields are reduced (min, max, avg, sum).
func (s *FieldSort) Mode(m string) *FieldSort {
	s.mode = m
	return s
}

// Source renders the bare field name when no option is set.
func (s *FieldSort) Source() any {
	if s.order == "" && s.missing == nil && s.mode == "" {
		return s.field
	}
	params := map[string]any{}
	if s.order != "" {
		params["order"] = s.order
	}
	if s.missing != nil {
		params["missing"] = s.missing
	}
	if s.mode != "" {
		params["mode"] = s.mode
	}
	return map[string]any{s.field: params}
}

// ScoreSort orders hits by relevance.
type ScoreSort struct {
	order string
}

// NewScoreSort creates a _score sort.
func NewScoreSort() *ScoreSort { return &ScoreSort{} }

// Asc sorts the least relevant first.
func (s *ScoreSort) Asc() *ScoreSort {
	s.order = Asc
	return s
}

// Source renders the sort body.
func (s *ScoreSort) Source() any {
	if s.order == "" {
		return "_score"
	}
	return map[string]any{"_score": map[string]any{"order": s.order}}
}

// GeoDistanceSort orders hits by distance from a point.
type GeoDistanceSort struct {
	field string
	point GeoPoint
	order string
	unit  string
}

// NewGeoDistanceSort creates a _geo_distance sort.
func NewGeoDistanceSort(field string, lat, lon float64) *GeoDistanceSort {
	return &GeoDistanceSort{field: field, point: GeoPoint{Lat: lat, Lon: lon}}
}

// Desc sorts the farthest first.
func (s *GeoDistanceSort) Desc() *GeoDistanceSort {
	s.order = Desc
	return s
}

// Unit sets the distance unit reported in hit sort values.
func (s *GeoDistanceSort) Unit(u string) *GeoDistanceSort {
	s.unit = u
	return s
}

// Source renders the sort body.
func (s *GeoDistanceSort) Source() any {
	params := map[string]any{s.field: s.point.source()}
	if s.order != "" {
		params["order"] = s.order
	}
	if s.unit != "" {
		params["unit"] = s.unit
	}
	return map[string]any{"_geo_distance": params}
}

// RawSort is a sort given as its JSON value.
type RawSort struct {
	value any
}

// NewRawSort wraps a decoded sort value.
func NewRawSort(v any) *RawSort { return &RawSort{value: v} }

// Source returns the wrapped value.
func (s *RawSort) Source() any { return s.value }

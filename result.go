package esquery

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/esquery/internal/domain/search/result"
)

// Hit is a single matching document.
type Hit struct {
	Index  string
	ID     string
	Type   string
	Score  float64
	Scored bool // false when the engine returned a null score (e.g. sorted by field)
	Source json.RawMessage
	Sort   []json.RawMessage
}

// Decode unmarshals the hit's _source into v.
func (h Hit) Decode(v any) error {
	if len(h.Source) == 0 {
		return fmt.Errorf("decode hit %q: %w", h.ID, errNoSource)
	}
	if err := json.Unmarshal(h.Source, v); err != nil {
		return fmt.Errorf("decode hit %q: %w", h.ID, err)
	}
	return nil
}

var errNoSource = errors.New("hit has no _source")

// Result is a search response.
type Result struct {
	Took         int64
	TimedOut     bool
	Total        int64
	MaxScore     float64
	Hits         []Hit
	Aggregations map[string]json.RawMessage
}

// Decode unmarshals every hit's _source into a T, in hit order.
func Decode[T any](r *Result) ([]T, error) {
	items := make([]T, len(r.Hits))
	for i := range r.Hits {
		if err := r.Hits[i].Decode(&items[i]); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// Aggregation unmarshals the named aggregation result into v.
// It reports false when the response has no such aggregation.
func (r *Result) Aggregation(name string, v any) (bool, error) {
	raw, ok := r.Aggregations[name]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode aggregation %q: %w", name, err)
	}
	return true, nil
}

func newResult(set result.Set) *Result {
	r := &Result{
		Took:         set.Took,
		TimedOut:     set.TimedOut,
		Total:        set.Total,
		MaxScore:     set.MaxScore,
		Hits:         make([]Hit, len(set.Hits)),
		Aggregations: set.Aggregations,
	}
	for i := range set.Hits {
		h := &set.Hits[i]
		score, scored := h.Score()
		r.Hits[i] = Hit{
			Index:  h.Index(),
			ID:     h.ID(),
			Type:   h.Type(),
			Score:  score,
			Scored: scored,
			Source: h.Source(),
			Sort:   h.SortValues(),
		}
	}
	return r
}

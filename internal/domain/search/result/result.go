package result

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformed signals a response body that is not valid engine JSON.
var ErrMalformed = errors.New("malformed search response")

// Result is a single search hit.
type Result struct {
	id      string
	index   string
	docType string
	score   float64
	scored  bool
	source  json.RawMessage
	sort    []json.RawMessage
}

// New creates a search result.
func New(id, index, docType string, score float64, source json.RawMessage) Result {
	return Result{id: id, index: index, docType: docType, score: score, scored: true, source: source}
}

// ID returns the document identifier.
func (r *Result) ID() string { return r.id }

// Index returns the index the hit came from.
func (r *Result) Index() string { return r.index }

// Type returns the mapping type of the hit.
func (r *Result) Type() string { return r.docType }

// Score returns the relevance score and whether the engine computed one
// (sorted searches may return a null score).
func (r *Result) Score() (float64, bool) { return r.score, r.scored }

// Source returns the raw _source document.
func (r *Result) Source() json.RawMessage { return r.source }

// SortValues returns the raw per-hit sort values.
func (r *Result) SortValues() []json.RawMessage { return r.sort }

// Decode unmarshals the _source document into v.
func (r *Result) Decode(v any) error {
	if len(r.source) == 0 {
		return fmt.Errorf("hit %q has no _source", r.id)
	}
	if err := json.Unmarshal(r.source, v); err != nil {
		return fmt.Errorf("decode hit %q: %w", r.id, err)
	}
	return nil
}

// Set is a parsed search response.
type Set struct {
	Took         int64
	TimedOut     bool
	Total        int64
	MaxScore     float64
	Hits         []Result
	Aggregations map[string]json.RawMessage
}

// Parse reads an engine search response. hits.total is accepted both as a
// number and as an object with a "value" field.
func Parse(data []byte) (Set, error) {
	if !gjson.ValidBytes(data) {
		return Set{}, ErrMalformed
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return Set{}, fmt.Errorf("%w: top level is not an object", ErrMalformed)
	}

	set := Set{
		Took:     root.Get("took").Int(),
		TimedOut: root.Get("timed_out").Bool(),
		MaxScore: root.Get("hits.max_score").Float(),
	}

	total := root.Get("hits.total")
	if total.IsObject() {
		total = total.Get("value")
	}
	set.Total = total.Int()

	hits := root.Get("hits.hits").Array()
	set.Hits = make([]Result, 0, len(hits))
	for _, h := range hits {
		set.Hits = append(set.Hits, parseHit(h))
	}

	if aggs := root.Get("aggregations"); aggs.IsObject() {
		set.Aggregations = make(map[string]json.RawMessage)
		aggs.ForEach(func(key, value gjson.Result) bool {
			set.Aggregations[key.String()] = json.RawMessage(value.Raw)
			return true
		})
	}

	return set, nil
}

func parseHit(h gjson.Result) Result {
	r := Result{
		id:      h.Get("_id").String(),
		index:   h.Get("_index").String(),
		docType: h.Get("_type").String(),
	}
	if score := h.Get("_score"); score.Exists() && score.Type != gjson.Null {
		r.score = score.Float()
		r.scored = true
	}
	if src := h.Get("_source"); src.Exists() {
		r.source = json.RawMessage(src.Raw)
	}
	for _, v := range h.Get("sort").Array() {
		r.sort = append(r.sort, json.RawMessage(v.Raw))
	}
	return r
}

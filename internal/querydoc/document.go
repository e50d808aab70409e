// Package querydoc decodes declarative search documents (JSON or YAML) into
// request builder registrations.
package querydoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/esquery/internal/domain"
	"github.com/kailas-cloud/esquery/internal/domain/search/request"
	"github.com/kailas-cloud/esquery/pkg/dsl"
)

// Format names the document encoding.
type Format string

const (
	// FormatAuto picks JSON when the document starts with '{', YAML otherwise.
	FormatAuto Format = ""
	// FormatJSON decodes strict JSON.
	FormatJSON Format = "json"
	// FormatYAML decodes YAML.
	FormatYAML Format = "yaml"
)

// Document is a declarative search request.
type Document struct {
	Queries  []map[string]any `json:"queries"   yaml:"queries"`
	Filters  []map[string]any `json:"filters"   yaml:"filters"`
	Sort     []any            `json:"sort"      yaml:"sort"`
	Aggs     map[string]any   `json:"aggs"      yaml:"aggs"`
	From     *int             `json:"from"      yaml:"from"`
	Size     *int             `json:"size"      yaml:"size"`
	MinScore *float64         `json:"min_score" yaml:"min_score"`
}

// Parse decodes and validates a document. Errors wrap domain.ErrInvalidDocument.
func Parse(data []byte, format Format) (Document, error) {
	if format == FormatAuto {
		format = detect(data)
	}

	var doc Document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return Document{}, invalid("decode json: %v", err)
		}
		if dec.More() {
			return Document{}, invalid("trailing data after document")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return Document{}, invalid("decode yaml: %v", err)
		}
		if err := doc.normalize(); err != nil {
			return Document{}, err
		}
	default:
		return Document{}, invalid("unknown format %q", format)
	}

	if err := doc.Validate(); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func detect(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatYAML
}

// Validate checks the shape of every entry.
func (d *Document) Validate() error {
	for i, q := range d.Queries {
		if _, _, err := single(q); err != nil {
			return invalid("queries[%d]: %v", i, err)
		}
	}
	for i, f := range d.Filters {
		if _, _, err := single(f); err != nil {
			return invalid("filters[%d]: %v", i, err)
		}
	}
	for i, s := range d.Sort {
		switch v := s.(type) {
		case string:
			if v == "" {
				return invalid("sort[%d]: empty field name", i)
			}
		case map[string]any:
			if len(v) != 1 {
				return invalid("sort[%d]: object must have exactly one key, got %d", i, len(v))
			}
		default:
			return invalid("sort[%d]: must be a string or an object, got %T", i, s)
		}
	}
	for name, a := range d.Aggs {
		body, ok := a.(map[string]any)
		if !ok || len(body) == 0 {
			return invalid("aggs.%s: must be a non-empty object", name)
		}
	}
	return nil
}

// Apply registers every document entry on b in document order. Aggregations
// are registered in name order.
func Apply(doc Document, b *request.Builder) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	for _, q := range doc.Queries {
		kind, body, _ := single(q)
		b.AddQuery(dsl.NewRawQuery(kind, body))
	}
	for _, f := range doc.Filters {
		kind, body, _ := single(f)
		b.AddFilter(dsl.NewRawFilter(kind, body))
	}
	for _, s := range doc.Sort {
		b.AddSort(dsl.NewRawSort(s))
	}

	names := make([]string, 0, len(doc.Aggs))
	for name := range doc.Aggs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		b.AddAggregation(dsl.NewRawAggregation(name, doc.Aggs[name].(map[string]any)))
	}

	if doc.From != nil {
		b.SetFirstResult(*doc.From)
	}
	if doc.Size != nil {
		b.SetMaxResults(*doc.Size)
	}
	if doc.MinScore != nil {
		b.SetMinScore(*doc.MinScore)
	}
	return nil
}

// Build parses data and returns the finalized request.
func Build(data []byte, format Format) (request.Request, error) {
	doc, err := Parse(data, format)
	if err != nil {
		return request.Request{}, err
	}
	b := request.NewBuilder()
	if err := Apply(doc, b); err != nil {
		return request.Request{}, err
	}
	return b.Build()
}

// single unpacks a one-key object such as {"term": {...}}.
func single(entry map[string]any) (string, any, error) {
	if len(entry) != 1 {
		return "", nil, fmt.Errorf("must have exactly one key naming the type, got %d", len(entry))
	}
	for k, v := range entry {
		if k == "" {
			return "", nil, fmt.Errorf("empty type name")
		}
		if _, ok := v.(map[string]any); !ok {
			return "", nil, fmt.Errorf("%s: body must be an object, got %T", k, v)
		}
		return k, v, nil
	}
	return "", nil, nil
}

// normalize rewrites YAML mappings with scalar keys into map[string]any so
// every body renders as JSON. Non-scalar keys and non-finite floats are
// rejected.
func (d *Document) normalize() error {
	for i, q := range d.Queries {
		v, err := jsonValue(q)
		if err != nil {
			return invalid("queries[%d]: %v", i, err)
		}
		d.Queries[i] = v.(map[string]any)
	}
	for i, f := range d.Filters {
		v, err := jsonValue(f)
		if err != nil {
			return invalid("filters[%d]: %v", i, err)
		}
		d.Filters[i] = v.(map[string]any)
	}
	for i, s := range d.Sort {
		v, err := jsonValue(s)
		if err != nil {
			return invalid("sort[%d]: %v", i, err)
		}
		d.Sort[i] = v
	}
	for name, a := range d.Aggs {
		v, err := jsonValue(a)
		if err != nil {
			return invalid("aggs.%s: %v", name, err)
		}
		d.Aggs[name] = v
	}
	return nil
}

func jsonValue(v any) (any, error) {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			nv, err := jsonValue(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			t[k] = nv
		}
		return t, nil
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			key, err := scalarKey(k)
			if err != nil {
				return nil, err
			}
			nv, err := jsonValue(item)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out[key] = nv
		}
		return out, nil
	case []any:
		for i, item := range t {
			nv, err := jsonValue(item)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			t[i] = nv
		}
		return t, nil
	case float64:
		if math.IsInf(t, 0) || math.IsNaN(t) {
			return nil, fmt.Errorf("non-finite number %v", t)
		}
		return t, nil
	default:
		return v, nil
	}
}

func scalarKey(k any) (string, error) {
	switch t := k.(type) {
	case string:
		return t, nil
	case int, int64, uint64, float64, bool:
		return fmt.Sprint(t), nil
	case nil:
		return "", fmt.Errorf("null mapping key")
	default:
		return "", fmt.Errorf("unsupported mapping key of type %T", k)
	}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidDocument, fmt.Sprintf(format, args...))
}

// Package compose reduces independently registered query and filter
// fragments into a single query node and a single filter tree.
package compose

import (
	"strings"

	"github.com/kailas-cloud/esquery/pkg/dsl"
)

// Kind is the composition class of a filter.
type Kind int

const (
	// BoolCombinable filters are cheap, cacheable bitsets. They are grouped
	// into one bool filter for the engine to combine.
	BoolCombinable Kind = iota
	// AndEligible filters are expensive or non-cacheable as bitsets (script,
	// numeric range, geo). They are applied directly as AND clauses.
	AndEligible
)

// String returns the metric/log label of the kind.
func (k Kind) String() string {
	if k == AndEligible {
		return "and"
	}
	return "bool"
}

var (
	andEligibleNames    = map[string]struct{}{"Script": {}, "NumericRange": {}}
	andEligiblePrefixes = []string{"Geo"}
)

// Classify returns the kind of f from its declared type name. Unknown
// types and nil filters are BoolCombinable.
func Classify(f dsl.Filter) Kind {
	if f == nil {
		return BoolCombinable
	}
	name := baseName(f.FilterType())
	if _, ok := andEligibleNames[name]; ok {
		return AndEligible
	}
	for _, p := range andEligiblePrefixes {
		if strings.HasPrefix(name, p) {
			return AndEligible
		}
	}
	return BoolCombinable
}

// baseName strips a namespace prefix such as "dsl." or "Filter\".
func baseName(name string) string {
	if i := strings.LastIndexAny(name, `.\`); i >= 0 {
		return name[i+1:]
	}
	return name
}

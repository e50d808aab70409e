package compose

import "github.com/kailas-cloud/esquery/pkg/dsl"

// Filters reduces filters into one minimal filter tree.
//
// No filters yield nil and a single filter is returned unchanged. Otherwise
// the bool-combinable filters are grouped into one bool filter (a lone one
// stays bare) placed first, followed by the and-eligible filters in
// registration order; more than one resulting clause is wrapped in an and
// filter.
func Filters(filters []dsl.Filter) dsl.Filter {
	if len(filters) <= 1 {
		f, _ := reduce(filters, nil)
		return f
	}

	boolGroup, chain := Partition(filters)

	if group, ok := reduce(boolGroup, wrapBool); ok {
		chain = append([]dsl.Filter{group}, chain...)
	}

	f, _ := reduce(chain, func(fs []dsl.Filter) dsl.Filter {
		return dsl.NewAndFilter(fs...)
	})
	return f
}

// Partition splits filters by Classify, preserving relative order within
// each group. The returned slices never alias the input.
func Partition(filters []dsl.Filter) (boolCombinable, andEligible []dsl.Filter) {
	for _, f := range filters {
		if Classify(f) == AndEligible {
			andEligible = append(andEligible, f)
		} else {
			boolCombinable = append(boolCombinable, f)
		}
	}
	return boolCombinable, andEligible
}

func wrapBool(fs []dsl.Filter) dsl.Filter {
	return dsl.NewBoolFilter().Must(fs...)
}

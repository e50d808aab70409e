package compose

import "github.com/kailas-cloud/esquery/pkg/dsl"

// Queries reduces queries into one node. It returns nil for no queries, the
// query itself for one, and a bool query with every query as a must clause,
// in order, for several.
func Queries(queries []dsl.Query) dsl.Query {
	q, _ := reduce(queries, func(qs []dsl.Query) dsl.Query {
		return dsl.NewBoolQuery().Must(qs...)
	})
	return q
}

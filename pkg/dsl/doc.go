// Package dsl holds the fragment types of the search engine query DSL:
// queries, filters, sort specifications and aggregations.
//
// Fragments are opaque building blocks. Each one renders itself into the
// engine's JSON body via Source; filters also declare their type name via
// FilterType, which is the only property the request composer looks at.
//
//	q := dsl.NewMatchQuery("title", "rock festival")
//	f := dsl.NewGeoDistanceFilter("location", 48.85, 2.35, "10km")
//	s := dsl.NewFieldSort("date").Desc()
//	a := dsl.NewTermsAggregation("cities", "city").Size(10)
//
// Fragments from outside this package (for example decoded from a JSON
// document) are supported through RawQuery and RawFilter.
package dsl

// Package esquery composes Elasticsearch search requests from independently
// written query and filter fragments and executes them.
//
// Fragments come from package dsl. Filters are merged by kind: cacheable
// filters (term, range, exists, bool, ...) are grouped into one bool filter,
// while script, numeric_range and geo filters are chained with "and" so the
// engine applies them to the already narrowed set.
//
// # Compose only
//
//	body, _ := esquery.NewQuery().
//	    Must(dsl.NewMatchQuery("title", "rock")).
//	    Filter(
//	        dsl.NewGeoDistanceFilter("loc", 48.85, 2.35, "10km"),
//	        dsl.NewTermFilter("city", "paris"),
//	    ).
//	    Size(20).
//	    Source()
//
// # Execute
//
//	client, _ := esquery.New(esquery.WithElasticsearch("localhost:9200"))
//	defer client.Close()
//
//	res, _ := client.Index("events").Query().
//	    Filter(dsl.NewTermFilter("kind", "concert")).
//	    Sort(dsl.NewFieldSort("date").Desc()).
//	    Do(ctx)
//	events, _ := esquery.Decode[Event](res)
package esquery

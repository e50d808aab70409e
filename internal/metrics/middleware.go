package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// unmatchedRoute labels requests no route claimed (404/405 from the router).
const unmatchedRoute = "unmatched"

// indexParam is the URL parameter of per-index search routes.
const indexParam = "index"

// HTTP Prometheus metrics, labelled by chi route pattern rather than raw path.
var (
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "esquery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds by route pattern",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esquery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by route pattern",
		},
		[]string{"method", "route", "status"},
	)

	// Only successful searches are counted so client-supplied names of
	// missing indices never become label values.
	httpIndexSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "esquery",
			Subsystem: "http",
			Name:      "index_searches_total",
			Help:      "Successful per-index searches served over HTTP",
		},
		[]string{"index"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestDuration, httpRequestsTotal, httpIndexSearchesTotal)
}

// Middleware records request duration and count per route pattern, and
// successful searches per index on routes carrying an {index} parameter.
func Middleware() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			code := responseStatus(ww)
			status := strconv.Itoa(code)
			route, index := routeLabels(r)

			httpRequestDuration.WithLabelValues(r.Method, route, status).Observe(time.Since(start).Seconds())
			httpRequestsTotal.WithLabelValues(r.Method, route, status).Inc()
			if index != "" && code < http.StatusBadRequest {
				httpIndexSearchesTotal.WithLabelValues(index).Inc()
			}
		})
	}
}

// routeLabels returns the matched route pattern and the {index} parameter, if any.
func routeLabels(r *http.Request) (route, index string) {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute, ""
	}
	route = rctx.RoutePattern()
	if route == "" {
		return unmatchedRoute, ""
	}
	return route, rctx.URLParam(indexParam)
}

// responseStatus treats a handler that never wrote a header as 200.
func responseStatus(ww chiMiddleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

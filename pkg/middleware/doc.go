// Package middleware provides HTTP middleware for the folio server.
//
// This package includes:
//   - Prometheus request metrics labeled by route pattern
//   - OpenTelemetry request tracing
//   - Structured request logging with slog
//
// All three are plain func(http.Handler) http.Handler values and plug into
// a chi router:
//
//	r := chi.NewRouter()
//	r.Use(chimw.RequestID)
//	r.Use(middleware.Logger(logger))
//	r.Use(middleware.OpenTelemetry())
//	r.Use(middleware.Prometheus(middleware.NewHTTPMetrics(
//	    middleware.WithRegistry(reg),
//	)))
//
// # Route Labels
//
// Metrics and span names use the chi route pattern ("/assets/*") rather
// than the raw path, so label cardinality stays bounded. Requests that do
// not match a route are labeled "unmatched".
//
// # Live Connections
//
// The live endpoint upgrades to WebSocket. The wrapped response writer
// still supports hijacking; the recorded duration for such requests is the
// lifetime of the connection, so they are better excluded with a filter:
//
//	middleware.OpenTelemetry(middleware.WithFilter(func(r *http.Request) bool {
//	    return r.URL.Path != "/_folio/live"
//	}))
package middleware

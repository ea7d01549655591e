package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// =============================================================================
// Test Helpers
// =============================================================================

func newRouter(mws ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	for _, mw := range mws {
		r.Use(mw)
	}
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("home"))
	})
	r.Get("/assets/*", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("asset"))
	})
	r.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})
	return r
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("gauge Write() error: %v", err)
	}
	return m.GetGauge().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

// recordingTracer keeps the spans it starts.
type recordingTracer struct {
	noop.Tracer
	mu    sync.Mutex
	spans []*recordingSpan
}

func (rt *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordingSpan{name: name, kind: cfg.SpanKind(), attrs: cfg.Attributes()}
	rt.mu.Lock()
	rt.spans = append(rt.spans, s)
	rt.mu.Unlock()
	return trace.ContextWithSpan(ctx, s), s
}

type recordingSpan struct {
	noop.Span
	name   string
	kind   trace.SpanKind
	attrs  []attribute.KeyValue
	status codes.Code
	ended  bool
}

func (s *recordingSpan) SetName(name string) { s.name = name }
func (s *recordingSpan) SetAttributes(kv ...attribute.KeyValue) {
	s.attrs = append(s.attrs, kv...)
}
func (s *recordingSpan) SetStatus(code codes.Code, _ string) { s.status = code }
func (s *recordingSpan) End(...trace.SpanEndOption)         { s.ended = true }

func (s *recordingSpan) attr(key string) (attribute.Value, bool) {
	for _, kv := range s.attrs {
		if string(kv.Key) == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

// =============================================================================
// Prometheus
// =============================================================================

func TestPrometheusRecordsByRoute(t *testing.T) {
	m := NewHTTPMetrics(WithRegistry(prometheus.NewRegistry()))
	h := newRouter(Prometheus(m))

	serve(h, "/")
	serve(h, "/assets/style.css")
	serve(h, "/assets/app.js")
	serve(h, "/boom")
	serve(h, "/missing")

	tests := []struct {
		route, status string
		want          float64
	}{
		{"/", "200", 1},
		{"/assets/*", "200", 2},
		{"/boom", "500", 1},
		{unmatchedRoute, "404", 1},
	}
	for _, tt := range tests {
		got := counterValue(t, m.requestsTotal.WithLabelValues(tt.route, http.MethodGet, tt.status))
		if got != tt.want {
			t.Errorf("requests_total{route=%q,status=%s} = %v, want %v", tt.route, tt.status, got, tt.want)
		}
	}

	if n := histogramCount(t, m.requestDuration.WithLabelValues("/assets/*")); n != 2 {
		t.Errorf("request_duration_seconds{route=/assets/*} count = %d, want 2", n)
	}
	if b := counterValue(t, m.responseBytes.WithLabelValues("/")); b != float64(len("home")) {
		t.Errorf("response_bytes_total{route=/} = %v, want %d", b, len("home"))
	}
	if g := gaugeValue(t, m.inFlight); g != 0 {
		t.Errorf("requests_in_flight = %v, want 0", g)
	}
}

func TestPrometheusInFlight(t *testing.T) {
	m := NewHTTPMetrics(WithRegistry(prometheus.NewRegistry()), WithNamespace("test"))

	var during float64
	h := Prometheus(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = gaugeValue(t, m.inFlight)
	}))
	serve(h, "/")

	if during != 1 {
		t.Errorf("requests_in_flight during request = %v, want 1", during)
	}
	if got := counterValue(t, m.requestsTotal.WithLabelValues(unmatchedRoute, http.MethodGet, "200")); got != 1 {
		t.Errorf("requests_total outside a router = %v, want 1 under %q", got, unmatchedRoute)
	}
}

func TestMetricsOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(
		WithRegistry(reg),
		WithNamespace("site"),
		WithSubsystem("web"),
		WithConstLabels(prometheus.Labels{"env": "test"}),
		WithBuckets([]float64{0.1, 1}),
	)
	m.inFlight.Inc()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	if !strings.Contains(strings.Join(names, ","), "site_web_requests_in_flight") {
		t.Errorf("registered families = %v, want site_web_requests_in_flight", names)
	}
}

// =============================================================================
// OpenTelemetry
// =============================================================================

func TestOpenTelemetrySpan(t *testing.T) {
	tracer := &recordingTracer{}
	var inHandler trace.Span
	r := chi.NewRouter()
	r.Use(OpenTelemetry(withTracer(tracer)))
	r.Get("/assets/*", func(w http.ResponseWriter, r *http.Request) {
		inHandler = SpanFromRequest(r)
	})

	serve(r, "/assets/style.css")

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	span := tracer.spans[0]
	if inHandler != trace.Span(span) {
		t.Error("SpanFromRequest should return the request span")
	}
	if span.name != "GET /assets/*" {
		t.Errorf("span name = %q, want %q", span.name, "GET /assets/*")
	}
	if span.kind != trace.SpanKindServer {
		t.Errorf("span kind = %v, want server", span.kind)
	}
	if v, _ := span.attr("http.route"); v.AsString() != "/assets/*" {
		t.Errorf("http.route = %q", v.AsString())
	}
	if v, _ := span.attr("http.target"); v.AsString() != "/assets/style.css" {
		t.Errorf("http.target = %q", v.AsString())
	}
	if v, _ := span.attr("http.status_code"); v.AsInt64() != 200 {
		t.Errorf("http.status_code = %d", v.AsInt64())
	}
	if span.status != codes.Ok {
		t.Errorf("status = %v, want Ok", span.status)
	}
	if !span.ended {
		t.Error("span should be ended")
	}
}

func TestOpenTelemetryServerError(t *testing.T) {
	tracer := &recordingTracer{}
	serve(newRouter(OpenTelemetry(withTracer(tracer))), "/boom")

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	span := tracer.spans[0]
	if span.status != codes.Error {
		t.Errorf("status = %v, want Error", span.status)
	}
	if _, ok := span.attr("folio.request_id"); !ok {
		t.Error("request id attribute should be set")
	}
}

func TestOpenTelemetryFilterAndAttributes(t *testing.T) {
	tracer := &recordingTracer{}
	h := newRouter(OpenTelemetry(
		withTracer(tracer),
		WithFilter(func(r *http.Request) bool { return r.URL.Path != "/boom" }),
		WithAttributeExtractor(func(*http.Request) []attribute.KeyValue {
			return []attribute.KeyValue{attribute.String("test.attr", "ok")}
		}),
	))

	serve(h, "/boom")
	serve(h, "/")

	if len(tracer.spans) != 1 {
		t.Fatalf("spans = %d, want 1", len(tracer.spans))
	}
	if v, _ := tracer.spans[0].attr("test.attr"); v.AsString() != "ok" {
		t.Errorf("test.attr = %q, want ok", v.AsString())
	}
}

func TestOpenTelemetryGlobalTracer(t *testing.T) {
	h := newRouter(OpenTelemetry(WithTracerName("folio-test")))
	if rr := serve(h, "/"); rr.Code != http.StatusOK || rr.Body.String() != "home" {
		t.Errorf("response = %d %q", rr.Code, rr.Body.String())
	}
}

// =============================================================================
// Logger
// =============================================================================

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	h := newRouter(Logger(logger))

	serve(h, "/assets/style.css")
	serve(h, "/missing")
	serve(h, "/boom")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("log lines = %d, want 3:\n%s", len(lines), buf.String())
	}

	tests := []struct {
		line  string
		level string
		want  []string
	}{
		{lines[0], "level=DEBUG", []string{"route=/assets/*", "status=200", "component=http", "request_id="}},
		{lines[1], "level=WARN", []string{"route=" + unmatchedRoute, "status=404"}},
		{lines[2], "level=ERROR", []string{"route=/boom", "status=500"}},
	}
	for _, tt := range tests {
		if !strings.Contains(tt.line, tt.level) {
			t.Errorf("line %q missing %s", tt.line, tt.level)
		}
		for _, w := range tt.want {
			if !strings.Contains(tt.line, w) {
				t.Errorf("line %q missing %q", tt.line, w)
			}
		}
	}
}

func TestLoggerDefaultsQuiet(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	serve(newRouter(Logger(logger)), "/")

	if buf.Len() != 0 {
		t.Errorf("successful requests should log at debug, got %q", buf.String())
	}
}

package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/folio/pkg/toast"
)

// MetricsConfig configures the Prometheus collectors of a Metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "folio").
	Namespace string

	// Subsystem is the metrics subsystem (default: "live").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures a Metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "folio",
		Subsystem: "live",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors of the live server. A nil
// *Metrics records nothing.
type Metrics struct {
	activeSessions   prometheus.Gauge
	sessionsTotal    prometheus.Counter
	sessionsRejected *prometheus.CounterVec
	eventsTotal      *prometheus.CounterVec
	eventDuration    *prometheus.HistogramVec
	patchesSent      prometheus.Counter
	bytesSent        prometheus.Counter
	bytesReceived    prometheus.Counter
	notifications    *prometheus.CounterVec
	submissions      *prometheus.CounterVec
	handlerPanics    prometheus.Counter
	wsErrors         *prometheus.CounterVec
}

// NewMetrics creates and registers the live server collectors.
//
// Metrics collected:
//   - folio_live_active_sessions: Gauge of open sessions
//   - folio_live_sessions_total: Counter of sessions started
//   - folio_live_sessions_rejected_total: Counter of refused handshakes by reason
//   - folio_live_events_total: Counter of events by type and status
//   - folio_live_event_duration_seconds: Histogram of event handling time
//   - folio_live_patches_sent_total: Counter of patches sent
//   - folio_live_bytes_sent_total, folio_live_bytes_received_total
//   - folio_live_notifications_total: Counter of notifications by kind
//   - folio_live_contact_submissions_total: Counter of submissions by outcome
//   - folio_live_handler_panics_total: Counter of recovered panics
//   - folio_live_websocket_errors_total: Counter of WebSocket errors by type
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string) prometheus.Counter {
		return factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		})
	}
	counterVec := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}

	return &Metrics{
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of open live sessions",
			ConstLabels: config.ConstLabels,
		}),
		sessionsTotal:    counter("sessions_total", "Total number of live sessions started"),
		sessionsRejected: counterVec("sessions_rejected_total", "Handshakes refused, by reason", "reason"),
		eventsTotal:      counterVec("events_total", "Client events handled, by type and status", "type", "status"),
		eventDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "event_duration_seconds",
			Help:        "Event handling duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"type"}),
		patchesSent:   counter("patches_sent_total", "Total number of patches sent to clients"),
		bytesSent:     counter("bytes_sent_total", "Bytes written to live connections"),
		bytesReceived: counter("bytes_received_total", "Bytes read from live connections"),
		notifications: counterVec("notifications_total", "Notifications shown, by kind", "kind"),
		submissions:   counterVec("contact_submissions_total", "Contact form submissions, by outcome", "outcome"),
		handlerPanics: counter("handler_panics_total", "Panics recovered on session event loops"),
		wsErrors:      counterVec("websocket_errors_total", "WebSocket errors, by type", "type"),
	}
}

// SessionOpened records a new session.
func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
	m.sessionsTotal.Inc()
}

// SessionClosed records a closed session.
func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// SessionRejected records a refused handshake.
func (m *Metrics) SessionRejected(reason string) {
	if m == nil {
		return
	}
	m.sessionsRejected.WithLabelValues(reason).Inc()
}

// EventHandled records one handled client event.
func (m *Metrics) EventHandled(eventType, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.eventsTotal.WithLabelValues(eventType, status).Inc()
	m.eventDuration.WithLabelValues(eventType).Observe(d.Seconds())
}

// PatchesSent records a flushed batch.
func (m *Metrics) PatchesSent(count, bytes int) {
	if m == nil {
		return
	}
	m.patchesSent.Add(float64(count))
	m.bytesSent.Add(float64(bytes))
}

// BytesReceived records bytes read from a connection.
func (m *Metrics) BytesReceived(n int) {
	if m == nil {
		return
	}
	m.bytesReceived.Add(float64(n))
}

// Notified records a notification shown to a visitor.
func (m *Metrics) Notified(kind toast.Kind) {
	if m == nil {
		return
	}
	m.notifications.WithLabelValues(string(kind)).Inc()
}

// Submitted records a contact form submission outcome.
func (m *Metrics) Submitted(outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(outcome).Inc()
}

// HandlerPanic records a recovered panic.
func (m *Metrics) HandlerPanic() {
	if m == nil {
		return
	}
	m.handlerPanics.Inc()
}

// WebSocketError records a WebSocket error.
func (m *Metrics) WebSocketError(errorType string) {
	if m == nil {
		return
	}
	m.wsErrors.WithLabelValues(errorType).Inc()
}

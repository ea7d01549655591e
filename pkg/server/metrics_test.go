package server

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/folio/pkg/toast"
)

func TestMetricsRecord(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	m.SessionOpened()
	m.SessionOpened()
	m.SessionClosed()
	m.SessionRejected("outdated")
	m.EventHandled("Click", "ok", 3*time.Millisecond)
	m.PatchesSent(4, 120)
	m.BytesReceived(30)
	m.Notified(toast.KindSuccess)
	m.Submitted("sent")
	m.HandlerPanic()
	m.WebSocketError("read")

	checks := []struct {
		name string
		c    prometheus.Collector
		want float64
	}{
		{"active_sessions", m.activeSessions, 1},
		{"sessions_total", m.sessionsTotal, 2},
		{"sessions_rejected_total", m.sessionsRejected.WithLabelValues("outdated"), 1},
		{"events_total", m.eventsTotal.WithLabelValues("Click", "ok"), 1},
		{"patches_sent_total", m.patchesSent, 4},
		{"bytes_sent_total", m.bytesSent, 120},
		{"bytes_received_total", m.bytesReceived, 30},
		{"notifications_total", m.notifications.WithLabelValues("success"), 1},
		{"contact_submissions_total", m.submissions.WithLabelValues("sent"), 1},
		{"handler_panics_total", m.handlerPanics, 1},
		{"websocket_errors_total", m.wsErrors.WithLabelValues("read"), 1},
	}
	for _, c := range checks {
		if got := testutil.ToFloat64(c.c); got != c.want {
			t.Errorf("%s = %v, want %v", c.name, got, c.want)
		}
	}

	if n := testutil.CollectAndCount(m.eventDuration); n != 1 {
		t.Errorf("event_duration_seconds series = %d, want 1", n)
	}
}

func TestMetricsNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("site"), WithConstLabels(prometheus.Labels{"env": "test"}))
	m.SessionOpened()

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	var found bool
	for _, f := range families {
		if f.GetName() == "site_live_sessions_total" {
			found = true
			if l := f.GetMetric()[0].GetLabel(); len(l) != 1 || l[0].GetValue() != "test" {
				t.Errorf("labels = %v, want env=test", l)
			}
		}
	}
	if !found {
		t.Error("site_live_sessions_total not registered")
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.SessionOpened()
	m.SessionClosed()
	m.SessionRejected("x")
	m.EventHandled("Click", "ok", time.Millisecond)
	m.PatchesSent(1, 1)
	m.BytesReceived(1)
	m.Notified(toast.KindInfo)
	m.Submitted("invalid")
	m.HandlerPanic()
	m.WebSocketError("read")
}

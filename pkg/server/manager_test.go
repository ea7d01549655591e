package server

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/folio/pkg/protocol"
)

func newTestManager(t *testing.T, max int) (*SessionManager, *Metrics) {
	t.Helper()
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	return NewSessionManager(nil, max, m, discardLogger()), m
}

func TestManagerCreateAndClose(t *testing.T) {
	sm, m := newTestManager(t, 0)
	pg := testPage(t)

	s, err := sm.Create(nil, pg)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if s.PageVersion != pg.Version {
		t.Errorf("PageVersion = %q, want %q", s.PageVersion, pg.Version)
	}
	if sm.Get(s.ID) != s {
		t.Fatal("Get should return the session")
	}
	if got := testutil.ToFloat64(m.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}

	sm.Close(s.ID)
	if !s.IsClosed() {
		t.Error("session should be closed")
	}
	if sm.Get(s.ID) != nil {
		t.Error("closed session should be removed")
	}
	select {
	case <-s.Done():
	default:
		t.Error("Done should be closed")
	}

	stats := sm.Stats()
	if stats.Active != 0 || stats.TotalCreated != 1 || stats.TotalClosed != 1 || stats.Peak != 1 {
		t.Errorf("Stats() = %+v", stats)
	}
	if got := testutil.ToFloat64(m.activeSessions); got != 0 {
		t.Errorf("active_sessions = %v, want 0", got)
	}
}

func TestManagerCloseTwice(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	s, err := sm.Create(nil, testPage(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s.Close()
	s.Close()
	sm.Close(s.ID)

	if got := sm.Stats().TotalClosed; got != 1 {
		t.Errorf("TotalClosed = %d, want 1", got)
	}
}

func TestManagerMaxSessions(t *testing.T) {
	sm, _ := newTestManager(t, 1)
	pg := testPage(t)

	if _, err := sm.Create(nil, pg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := sm.Create(nil, pg); !errors.Is(err, ErrMaxSessionsReached) {
		t.Errorf("err = %v, want ErrMaxSessionsReached", err)
	}
}

func TestManagerCreateWithoutPage(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	if _, err := sm.Create(nil, nil); !errors.Is(err, ErrNoPage) {
		t.Errorf("err = %v, want ErrNoPage", err)
	}
}

func TestManagerCloseOutdated(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	pg := testPage(t)
	other := *pg
	other.Version = "other"

	current, _ := sm.Create(nil, pg)
	stale, _ := sm.Create(nil, &other)

	if n := sm.CloseOutdated(pg.Version); n != 1 {
		t.Errorf("CloseOutdated = %d, want 1", n)
	}
	if current.IsClosed() {
		t.Error("current session should stay open")
	}
	if !stale.IsClosed() {
		t.Error("stale session should be closed")
	}
}

func TestManagerForEach(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	pg := testPage(t)
	for i := 0; i < 3; i++ {
		if _, err := sm.Create(nil, pg); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	var seen int
	sm.ForEach(func(*Session) bool {
		seen++
		return seen < 2
	})
	if seen != 2 {
		t.Errorf("ForEach visited %d sessions, want 2", seen)
	}
}

func TestManagerShutdown(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	pg := testPage(t)
	for i := 0; i < 3; i++ {
		if _, err := sm.Create(nil, pg); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := sm.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown failed: %v", err)
	}
	if n := sm.Count(); n != 0 {
		t.Errorf("Count() = %d, want 0", n)
	}
}

func TestSessionQueueFull(t *testing.T) {
	sm := NewSessionManager(&SessionConfig{MaxEventQueue: 1}, 0, nil, discardLogger())
	s, err := sm.Create(nil, testPage(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	defer s.Close()

	if err := s.QueueEvent(&protocol.Event{Type: protocol.EventClick}); err != nil {
		t.Fatalf("first QueueEvent failed: %v", err)
	}
	if err := s.QueueEvent(&protocol.Event{Type: protocol.EventClick}); !errors.Is(err, ErrEventQueueFull) {
		t.Errorf("err = %v, want ErrEventQueueFull", err)
	}
}

func TestSessionPostAfterClose(t *testing.T) {
	sm, _ := newTestManager(t, 0)
	s, err := sm.Create(nil, testPage(t))
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	s.Close()
	if s.post(func() {}) {
		t.Error("post should fail on a closed session")
	}
}

package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/folio/pkg/protocol"
)

// SessionManager manages all active sessions.
// It handles session creation, lookup and shutdown.
type SessionManager struct {
	// Sessions map protected by RWMutex
	sessions map[string]*Session
	mu       sync.RWMutex

	config      *SessionConfig
	maxSessions int

	// Stats
	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64
	peakSessions int

	metrics *Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// NewSessionManager creates a SessionManager. A maxSessions of zero means
// no limit.
func NewSessionManager(config *SessionConfig, maxSessions int, metrics *Metrics, logger *slog.Logger) *SessionManager {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		sessions:    make(map[string]*Session),
		config:      config,
		maxSessions: maxSessions,
		metrics:     metrics,
		tracer:      defaultTracer(),
		logger:      logger.With("component", "session_manager"),
	}
}

// Create creates a session for conn running against pg. The session is
// registered but not started.
func (sm *SessionManager) Create(conn *websocket.Conn, pg *Page) (*Session, error) {
	if pg == nil {
		return nil, ErrNoPage
	}

	sm.mu.Lock()
	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		sm.mu.Unlock()
		return nil, ErrMaxSessionsReached
	}

	session, err := newSession(uuid.NewString(), conn, pg, sm.config, sm.logger, sm.metrics, sm.tracer)
	if err != nil {
		sm.mu.Unlock()
		return nil, err
	}
	session.onClose = sm.remove

	sm.sessions[session.ID] = session
	sm.totalCreated.Add(1)
	if len(sm.sessions) > sm.peakSessions {
		sm.peakSessions = len(sm.sessions)
	}
	active := len(sm.sessions)
	sm.mu.Unlock()

	sm.metrics.SessionOpened()
	sm.logger.Info("session created",
		"session_id", session.ID,
		"page_version", pg.Version,
		"active_sessions", active)

	return session, nil
}

// remove unregisters a closed session.
func (sm *SessionManager) remove(s *Session) {
	sm.mu.Lock()
	_, ok := sm.sessions[s.ID]
	delete(sm.sessions, s.ID)
	sm.mu.Unlock()

	if ok {
		sm.totalClosed.Add(1)
		sm.metrics.SessionClosed()
	}
}

// Get returns a session by ID, or nil if not found.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Close closes a session by ID and removes it from the manager.
func (sm *SessionManager) Close(id string) {
	if s := sm.Get(id); s != nil {
		s.Close()
	}
}

// Count returns the number of active sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ForEach iterates over all sessions until fn returns false.
// The callback should not perform long-running operations as it holds the read lock.
func (sm *SessionManager) ForEach(fn func(*Session) bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for _, session := range sm.sessions {
		if !fn(session) {
			break
		}
	}
}

func (sm *SessionManager) snapshot() []*Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	return sessions
}

// CloseOutdated asks every session whose page is not version to reload,
// then closes it. It returns the number of sessions closed.
func (sm *SessionManager) CloseOutdated(version string) int {
	var n int
	for _, s := range sm.snapshot() {
		if s.PageVersion == version {
			continue
		}
		s.CloseWithReason(protocol.CloseReload, "page updated")
		n++
	}
	if n > 0 {
		sm.logger.Info("closed outdated sessions", "count", n, "page_version", version)
	}
	return n
}

// Shutdown closes all sessions concurrently, telling clients the server is
// going away. It returns ctx.Err() if ctx ends first.
func (sm *SessionManager) Shutdown(ctx context.Context) error {
	sessions := sm.snapshot()

	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.CloseWithReason(protocol.CloseServerShutdown, "server shutting down")
		}(session)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		sm.logger.Info("session manager shutdown", "closed_sessions", len(sessions))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ManagerStats contains aggregated session manager statistics.
type ManagerStats struct {
	Active       int
	TotalCreated uint64
	TotalClosed  uint64
	Peak         int
}

// Stats returns aggregated session statistics.
func (sm *SessionManager) Stats() ManagerStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return ManagerStats{
		Active:       len(sm.sessions),
		TotalCreated: sm.totalCreated.Load(),
		TotalClosed:  sm.totalClosed.Load(),
		Peak:         sm.peakSessions,
	}
}

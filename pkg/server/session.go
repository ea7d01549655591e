package server

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/folio/pkg/clock"
	"github.com/vango-dev/folio/pkg/dom"
	"github.com/vango-dev/folio/pkg/page"
	"github.com/vango-dev/folio/pkg/protocol"
	"github.com/vango-dev/folio/pkg/toast"
)

// Page is the document live sessions run against.
type Page struct {
	// HTML is the rendered document, as served to browsers.
	HTML []byte

	// Version identifies the content HTML was rendered from.
	Version string

	// Options configure each session's controller. Logger is replaced
	// by the session logger; Hooks are kept and extended with metrics.
	Options page.Options
}

// Session represents a single WebSocket connection and its page.
type Session struct {
	// Identity
	ID          string
	PageVersion string
	CreatedAt   time.Time
	lastActive  atomic.Int64

	// Connection
	conn   *websocket.Conn
	mu     sync.Mutex // Protects conn writes
	closed atomic.Bool

	// Sequence numbers
	sendSeq atomic.Uint64 // Last patch batch sent
	recvSeq atomic.Uint64 // Last received event sequence

	// Page state, owned by the EventLoop
	doc     *dom.Document
	ctrl    *page.Controller
	clock   *clock.Loop
	pending []protocol.Patch

	// Channels
	events chan *protocol.Event // Incoming events
	tasks  chan func()          // Timer callbacks and other loop work
	done   chan struct{}        // Shutdown signal

	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
	onClose   func(*Session)

	config  *SessionConfig
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer

	// Counters
	eventCount atomic.Uint64
	patchCount atomic.Uint64
	bytesSent  atomic.Uint64
	bytesRecv  atomic.Uint64
}

// newSession parses pg into a fresh document and prepares its controller.
// The controller is initialized on the EventLoop once Start is called.
func newSession(id string, conn *websocket.Conn, pg *Page, config *SessionConfig, logger *slog.Logger, metrics *Metrics, tracer trace.Tracer) (*Session, error) {
	if config == nil {
		config = DefaultSessionConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if tracer == nil {
		tracer = defaultTracer()
	}

	now := time.Now()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		ID:          id,
		PageVersion: pg.Version,
		CreatedAt:   now,
		conn:        conn,
		events:      make(chan *protocol.Event, config.MaxEventQueue),
		tasks:       make(chan func(), config.MaxEventQueue),
		done:        make(chan struct{}),
		ctx:         ctx,
		cancel:      cancel,
		config:      config,
		logger:      logger.With("session_id", id),
		metrics:     metrics,
		tracer:      tracer,
	}
	s.lastActive.Store(now.UnixNano())

	doc, err := dom.Parse(bytes.NewReader(pg.HTML), dom.Options{
		Sink:   dom.SinkFunc(s.emit),
		Logger: s.logger,
	})
	if err != nil {
		cancel()
		return nil, NewSessionError(id, "parse page", err)
	}
	s.doc = doc
	s.clock = clock.NewLoop(s.post)

	opts := pg.Options
	opts.Logger = s.logger
	opts.Hooks = s.hooks(opts.Hooks)
	s.ctrl = page.New(doc, s.clock, opts)

	return s, nil
}

// hooks chains metrics recording after the page's own hooks.
func (s *Session) hooks(h page.Hooks) page.Hooks {
	notified, submitted := h.Notified, h.Submitted
	return page.Hooks{
		Notified: func(kind toast.Kind) {
			if notified != nil {
				notified(kind)
			}
			s.metrics.Notified(kind)
		},
		Submitted: func(outcome string) {
			if submitted != nil {
				submitted(outcome)
			}
			s.metrics.Submitted(outcome)
		},
	}
}

// emit buffers a patch until the current unit of work ends.
func (s *Session) emit(p protocol.Patch) {
	s.pending = append(s.pending, p)
}

// post queues fn on the EventLoop. It reports false once the session is
// closed.
func (s *Session) post(fn func()) bool {
	select {
	case <-s.done:
		return false
	default:
	}
	select {
	case s.tasks <- fn:
		return true
	case <-s.done:
		return false
	}
}

// Dispatch runs fn on the EventLoop and flushes the patches it causes.
func (s *Session) Dispatch(fn func()) bool {
	return s.post(fn)
}

// handleEvent applies a client event to the document.
func (s *Session) handleEvent(ev *protocol.Event) {
	s.recvSeq.Store(ev.Seq)
	s.eventCount.Add(1)
	s.UpdateLastActive()

	span := s.startEventSpan(ev)
	start := time.Now()

	err := s.safeExecute(ev.HID, ev.Type.String(), func() {
		s.doc.Dispatch(ev)
	})
	n := s.flush()

	status := "ok"
	if err != nil {
		status = "panic"
	}
	s.metrics.EventHandled(ev.Type.String(), status, time.Since(start))
	endEventSpan(span, n, err)
}

// runTask runs loop work such as a timer callback.
func (s *Session) runTask(fn func()) {
	s.safeExecute("", "task", fn)
	s.flush()
}

// safeExecute runs fn, recovering and reporting a panic.
func (s *Session) safeExecute(hid, eventType string, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			herr := NewHandlerError(s.ID, hid, eventType, r, debug.Stack())
			s.logger.Error("handler panic",
				"hid", hid,
				"event", eventType,
				"panic", r,
				"stack", string(herr.Stack))
			s.metrics.HandlerPanic()
			s.sendErrorMessage(protocol.ErrHandlerPanic, fmt.Sprint(r))
			err = herr
		}
	}()
	fn()
	return nil
}

// flush sends the buffered patches and returns how many there were.
func (s *Session) flush() int {
	if len(s.pending) == 0 {
		return 0
	}
	patches := s.pending
	s.pending = nil
	s.SendPatches(patches)
	return len(patches)
}

// QueueEvent queues an event for the EventLoop.
func (s *Session) QueueEvent(ev *protocol.Event) error {
	select {
	case s.events <- ev:
		return nil
	default:
		s.logger.Warn("event queue full, dropping event", "hid", ev.HID, "type", ev.Type.String())
		return ErrEventQueueFull
	}
}

// Close stops the session loops and closes the connection. It is safe to
// call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)
		s.clock.Close()
		s.cancel()

		s.mu.Lock()
		if s.conn != nil {
			s.conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second),
			)
			s.conn.Close()
		}
		s.mu.Unlock()

		s.logger.Info("session closed",
			"events", s.eventCount.Load(),
			"patches", s.patchCount.Load(),
			"bytes_sent", s.bytesSent.Load(),
			"bytes_recv", s.bytesRecv.Load())

		if s.onClose != nil {
			s.onClose(s)
		}
	})
}

// CloseWithReason tells the client why the session ends, then closes it.
func (s *Session) CloseWithReason(reason protocol.CloseReason, message string) {
	s.SendClose(reason, message)
	s.Close()
}

// IsClosed reports whether the session has been closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done returns a channel closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// UpdateLastActive records client activity.
func (s *Session) UpdateLastActive() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns the time of the last client activity.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// BytesReceived records n bytes read from the connection.
func (s *Session) BytesReceived(n int) {
	s.bytesRecv.Add(uint64(n))
	s.metrics.BytesReceived(n)
}

// Logger returns the session logger.
func (s *Session) Logger() *slog.Logger {
	return s.logger
}

// SessionStats contains session statistics.
type SessionStats struct {
	ID         string
	CreatedAt  time.Time
	LastActive time.Time
	EventCount uint64
	PatchCount uint64
	BytesSent  uint64
	BytesRecv  uint64
}

// Stats returns session statistics.
func (s *Session) Stats() SessionStats {
	return SessionStats{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		LastActive: s.LastActive(),
		EventCount: s.eventCount.Load(),
		PatchCount: s.patchCount.Load(),
		BytesSent:  s.bytesSent.Load(),
		BytesRecv:  s.bytesRecv.Load(),
	}
}

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/folio/pkg/protocol"
)

// Server accepts live sessions for the current page.
type Server struct {
	// Session management
	sessions *SessionManager

	// Current page; swapped atomically by SetPage
	page atomic.Pointer[Page]

	// Configuration
	config *ServerConfig

	// WebSocket upgrader
	upgrader websocket.Upgrader

	metrics *Metrics

	// Logger
	logger *slog.Logger
}

// New creates a new Server serving pg. A nil config uses
// DefaultServerConfig; unset fields are filled with defaults.
func New(config *ServerConfig, pg *Page) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	config.fillDefaults()

	logger := slog.Default().With("component", "server")

	s := &Server{
		sessions: NewSessionManager(config.SessionConfig, config.MaxSessions, config.Metrics, logger),
		config:   config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		metrics: config.Metrics,
		logger:  logger,
	}
	if pg != nil {
		s.page.Store(pg)
	}
	return s
}

// Page returns the page new sessions run against.
func (s *Server) Page() *Page {
	return s.page.Load()
}

// SetPage replaces the current page. Sessions opened on a different
// version are told to reload; the number of such sessions is returned.
func (s *Server) SetPage(pg *Page) int {
	if pg == nil {
		return 0
	}
	old := s.page.Swap(pg)
	if old != nil && old.Version == pg.Version {
		return 0
	}
	s.logger.Info("page updated", "page_version", pg.Version)
	return s.sessions.CloseOutdated(pg.Version)
}

// WebSocketHandler returns the handler for the live endpoint.
func (s *Server) WebSocketHandler() http.Handler {
	return http.HandlerFunc(s.HandleWebSocket)
}

// ServePage writes the current page HTML. The page version doubles as
// its ETag.
func (s *Server) ServePage(w http.ResponseWriter, r *http.Request) {
	pg := s.Page()
	if pg == nil {
		http.Error(w, ErrNoPage.Error(), http.StatusServiceUnavailable)
		return
	}

	etag := fmt.Sprintf("%q", pg.Version)
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")

	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if r.Method == http.MethodHead {
		w.WriteHeader(http.StatusOK)
		return
	}
	_, _ = w.Write(pg.HTML)
}

// HandleWebSocket upgrades the connection, performs the handshake and
// starts a session.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		s.metrics.WebSocketError("upgrade")
		return
	}

	conn.SetReadLimit(s.config.SessionConfig.MaxMessageSize)

	hello, err := s.readHandshake(conn)
	if err != nil {
		s.logger.Warn("handshake failed", "error", err, "remote", r.RemoteAddr)
		s.metrics.SessionRejected("invalid")
		s.sendHandshakeError(conn, protocol.HandshakeInvalidFormat)
		conn.Close()
		return
	}

	if !hello.Version.Compatible(protocol.CurrentVersion) {
		s.logger.Warn("protocol version mismatch",
			"client", fmt.Sprintf("%d.%d", hello.Version.Major, hello.Version.Minor))
		s.metrics.SessionRejected("version")
		s.sendHandshakeError(conn, protocol.HandshakeVersionMismatch)
		conn.Close()
		return
	}

	pg := s.Page()
	if pg == nil {
		s.metrics.SessionRejected("no_page")
		s.sendHandshakeError(conn, protocol.HandshakeInternalError)
		conn.Close()
		return
	}
	if hello.PageVersion != pg.Version {
		s.logger.Info("handshake refused", "error", ErrPageOutdated, "client_version", hello.PageVersion, "page_version", pg.Version)
		s.metrics.SessionRejected("outdated")
		s.sendHandshakeError(conn, protocol.HandshakePageOutdated)
		conn.Close()
		return
	}

	session, err := s.sessions.Create(conn, pg)
	if err != nil {
		status := protocol.HandshakeInternalError
		reason := "error"
		if errors.Is(err, ErrMaxSessionsReached) {
			status = protocol.HandshakeServerBusy
			reason = "busy"
		}
		s.logger.Warn("session create failed", "error", err)
		s.metrics.SessionRejected(reason)
		s.sendHandshakeError(conn, status)
		conn.Close()
		return
	}

	if err := s.sendServerHello(conn, session); err != nil {
		s.logger.Error("server hello failed", "error", err)
		session.Close()
		return
	}

	session.Start()
}

// readHandshake reads the client hello within the handshake timeout.
func (s *Server) readHandshake(conn *websocket.Conn) (*protocol.ClientHello, error) {
	conn.SetReadDeadline(time.Now().Add(s.config.SessionConfig.HandshakeTimeout))
	defer conn.SetReadDeadline(time.Time{})

	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		return nil, err
	}
	if frame.Type != protocol.FrameHandshake {
		return nil, fmt.Errorf("%w: got %s frame", ErrInvalidHandshake, frame.Type)
	}
	hello, err := protocol.DecodeClientHello(frame.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHandshake, err)
	}
	return hello, nil
}

// sendHandshakeError sends a handshake error response.
func (s *Server) sendHandshakeError(conn *websocket.Conn, status protocol.HandshakeStatus) {
	if err := s.writeHello(conn, protocol.NewServerHelloError(status)); err != nil {
		s.logger.Debug("handshake error send failed", "error", err)
	}
}

// sendServerHello sends a successful handshake response.
func (s *Server) sendServerHello(conn *websocket.Conn, session *Session) error {
	return s.writeHello(conn, protocol.NewServerHello(session.ID, uint64(time.Now().UnixMilli())))
}

func (s *Server) writeHello(conn *websocket.Conn, hello *protocol.ServerHello) error {
	data, err := protocol.NewFrame(protocol.FrameHandshake, protocol.EncodeServerHello(hello)).Encode()
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(s.config.SessionConfig.WriteTimeout))
	return conn.WriteMessage(websocket.BinaryMessage, data)
}

// Shutdown closes all sessions, waiting at most ShutdownTimeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.sessions.Shutdown(ctx); err != nil {
		s.logger.Error("shutdown error", "error", err)
		return err
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration.
func (s *Server) Config() *ServerConfig {
	return s.config
}

// Logger returns the server logger.
func (s *Server) Logger() *slog.Logger {
	return s.logger
}

// SetLogger sets the server logger. Sessions created afterwards log
// through it too.
func (s *Server) SetLogger(logger *slog.Logger) {
	s.logger = logger
	s.sessions.logger = logger.With("component", "session_manager")
}

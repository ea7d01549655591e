// Package server runs live portfolio pages over WebSocket.
//
// The page is rendered once on the server. Every browser that loads it
// opens a WebSocket to the live endpoint; the server parses the same HTML
// into a DOM mirror and runs a page controller against it. Events from the
// browser are applied to the mirror, and the mutations the controller
// makes come back as patches.
//
// # Architecture
//
//   - Session: one connection, its DOM mirror, controller and clock
//   - SessionManager: all active sessions, with a concurrency limit
//   - Server: the handshake, the thin client endpoint and page swaps
//
// # Session Lifecycle
//
// The session runs three goroutines:
//   - ReadLoop: receives WebSocket frames, decodes events, queues them
//   - EventLoop: applies events and timer callbacks, flushes patches
//   - WriteLoop: sends heartbeat pings
//
// Only the EventLoop touches the document and the controller. Timers
// scheduled by the controller go through a clock.Loop that posts their
// callbacks onto the EventLoop.
//
// # Event Processing
//
// When a client sends an event:
//  1. ReadLoop decodes the binary event frame
//  2. The event is queued for the EventLoop
//  3. The document dispatches it to the controller's listeners
//  4. Patches emitted meanwhile are encoded and sent in one batch
//
// # Handshake
//
// The client's hello carries the protocol version and the version of the
// page it holds. A page rendered from older content is refused with
// HandshakePageOutdated and the client reloads. When content changes while
// sessions are open, SetPage closes them with CloseReload.
//
// # Example Usage
//
//	rendered, _ := site.Render(content.Default(), site.Options{})
//	srv := server.New(server.DefaultServerConfig(), &server.Page{
//	    HTML:    rendered.HTML,
//	    Version: rendered.Version,
//	    Options: page.DefaultOptions(),
//	})
//
//	mux := http.NewServeMux()
//	mux.Handle("/_folio/live", srv.WebSocketHandler())
//	mux.HandleFunc("/_folio/client.js", srv.ServeThinClient)
//
// # Thread Safety
//
// SessionManager and Server are safe for concurrent use. Session methods
// that write to the connection serialize on the session's write lock;
// everything else about a session belongs to its EventLoop.
package server

// Package folio serves the interactive portfolio page.
//
// An App renders the page from folio.yaml, serves it with its assets and
// the thin client, and runs one live session per WebSocket connection:
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    return err
//	}
//	app, err := folio.New(cfg, folio.Options{Logger: logger})
//	if err != nil {
//	    return err
//	}
//	return app.ListenAndServe(ctx)
package folio

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/folio/internal/config"
	"github.com/vango-dev/folio/internal/errors"
	"github.com/vango-dev/folio/pkg/middleware"
	"github.com/vango-dev/folio/pkg/render"
	"github.com/vango-dev/folio/pkg/server"
	"github.com/vango-dev/folio/pkg/site"
)

// Routes served by an App.
const (
	LivePath    = "/_folio/live"
	ClientPath  = "/_folio/client.js"
	HealthPath  = "/healthz"
	MetricsPath = "/metrics"
)

// App is the folio HTTP application. It implements http.Handler.
type App struct {
	server   *server.Server
	router   chi.Router
	registry *prometheus.Registry
	assets   fs.FS

	addr   string
	opts   Options
	logger *slog.Logger
}

// New renders the page described by cfg and builds the application
// around it.
func New(cfg *config.Config, opts Options) (*App, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	pg, err := BuildPage(cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := server.NewMetrics(server.WithRegistry(registry))

	srv := server.New(buildServerConfig(cfg, opts, metrics), pg)
	srv.SetLogger(logger.With("component", "server"))

	a := &App{
		server:   srv,
		registry: registry,
		assets:   site.Assets(),
		addr:     cfg.Address(),
		opts:     opts,
		logger:   logger,
	}
	a.router = a.routes(middleware.NewHTTPMetrics(middleware.WithRegistry(registry)))
	return a, nil
}

// BuildPage renders the page for cfg together with the controller
// options its live sessions run with.
func BuildPage(cfg *config.Config) (*server.Page, error) {
	rendered, err := site.Render(cfg.Content, site.Options{
		LiveURL:      render.DefaultLiveURL,
		ClientScript: ClientPath,
		StyleSheet:   site.StyleSheetPath,
		Debug:        cfg.Server.Debug,
	})
	if err != nil {
		return nil, errors.FromError(err, "F300")
	}
	return &server.Page{
		HTML:    rendered.HTML,
		Version: rendered.Version,
		Options: PageOptions(cfg.Page),
	}, nil
}

func (a *App) routes(httpMetrics *middleware.HTTPMetrics) chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(a.logger))
	r.Use(chimw.Recoverer)
	if a.opts.Tracing {
		r.Use(middleware.OpenTelemetry())
	}
	r.Use(middleware.Prometheus(httpMetrics))

	r.Get("/", a.server.ServePage)
	r.Head("/", a.server.ServePage)
	r.Handle("/assets/*", http.HandlerFunc(a.serveAsset))
	r.Handle(ClientPath, http.HandlerFunc(a.server.ServeThinClient))
	r.Get(LivePath, a.server.HandleWebSocket)
	r.Get(HealthPath, a.serveHealth)
	r.Handle(MetricsPath, promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry}))
	return r
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Health is the body of the health endpoint.
type Health struct {
	Status      string `json:"status"`
	PageVersion string `json:"page_version"`
	Sessions    int    `json:"sessions"`
}

func (a *App) serveHealth(w http.ResponseWriter, r *http.Request) {
	h := Health{Status: "ok", Sessions: a.server.Sessions().Count()}
	status := http.StatusOK
	if pg := a.server.Page(); pg != nil {
		h.PageVersion = pg.Version
	} else {
		h.Status = "unavailable"
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(h)
}

// Reload renders cfg and swaps it in as the current page. Live sessions
// on an older version of the content are told to reload; their number is
// returned.
func (a *App) Reload(cfg *config.Config) (int, error) {
	pg, err := BuildPage(cfg)
	if err != nil {
		return 0, err
	}
	return a.server.SetPage(pg), nil
}

// Server returns the live server.
func (a *App) Server() *server.Server {
	return a.server
}

// Registry returns the Prometheus registry behind /metrics.
func (a *App) Registry() *prometheus.Registry {
	return a.registry
}

// Addr returns the address ListenAndServe listens on.
func (a *App) Addr() string {
	return a.addr
}

// ListenAndServe serves the application on its configured address until
// ctx is done, then closes live sessions and shuts the HTTP server down.
func (a *App) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return errors.New("F301").
			WithDetail("Could not listen on " + a.addr).
			WithSuggestion("Pick another port with --port or server.port").
			Wrap(err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves the application on ln until ctx is done.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(a.logger.Handler(), slog.LevelWarn),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.Serve(ln)
	}()
	a.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.New("F301").Wrap(err)
	case <-ctx.Done():
	}

	timeout := a.server.Config().ShutdownTimeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Live sessions hold hijacked connections that http.Server.Shutdown
	// does not track.
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.logger.Warn("live sessions did not close in time", "error", err)
	}
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	a.logger.Info("server stopped")
	return nil
}

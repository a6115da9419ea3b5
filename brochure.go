package brochure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/jpalmerr/brochure/internal/metrics"
	"github.com/jpalmerr/brochure/internal/server"
	"github.com/jpalmerr/brochure/internal/state"
)

const (
	defaultListenIP     = "127.0.0.1"
	defaultPort         = 4000
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
)

// Route is a registered HTTP method and path pattern.
type Route struct {
	Method  string
	Pattern string
}

// Brochure serves one content directory over HTTP.
//
// It is created using [New] with functional options and started with
// [Brochure.Start]. The typical lifecycle is:
//
//	b, err := brochure.New(brochure.WithContentDir("./site"))
//	if err != nil {
//	    slog.Error("failed to create brochure", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer cancel()
//
//	b.Start(ctx) // blocks until context cancelled
type Brochure struct {
	source state.Source
	holder *state.Holder
	server *server.Server
	logger *slog.Logger

	// reloadMu serialises reloads; readers go through holder only
	reloadMu sync.Mutex
}

// New creates a new [Brochure] and loads its content.
//
// Templates and both error pages are read before New returns. If any of
// them is missing or invalid New returns an error, and no listener has been
// bound. Defaults:
//   - Listen address: 127.0.0.1:4000
//   - Content dir: the working directory
//   - Read and write timeouts: 10 seconds
//   - Metrics: enabled
func New(opts ...Option) (*Brochure, error) {
	cfg := &bConfig{
		listenIP:     defaultListenIP,
		port:         defaultPort,
		readTimeout:  defaultReadTimeout,
		writeTimeout: defaultWriteTimeout,
		metrics:      true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// default to slog.Default() if no logger provided
	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	src := state.Source{
		ListenIP:          cfg.listenIP,
		ListenPort:        cfg.port,
		ContentDir:        cfg.contentDir,
		TemplatesDir:      cfg.templatesDir,
		TemplateExtension: cfg.templateExtension,
		Layout:            cfg.layout,
		NotFoundPage:      cfg.notFoundPage,
		ServerErrorPage:   cfg.serverErrorPage,
		AssetErrors:       cfg.assetErrors,
	}
	st, err := state.Load(src, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to load site: %w", err)
	}

	var m *metrics.Metrics
	if cfg.metrics {
		m = metrics.New()
	}

	pages := make([]server.Page, len(cfg.pages))
	for i, p := range cfg.pages {
		pages[i] = server.Page{Path: p.Path, Template: p.Template, Title: p.Title}
	}

	holder := state.NewHolder(st)
	srv, err := server.NewServer(holder, server.Options{
		Pages:        pages,
		ReadTimeout:  cfg.readTimeout,
		WriteTimeout: cfg.writeTimeout,
		Metrics:      m,
	}, logger)
	if err != nil {
		return nil, err
	}

	return &Brochure{
		source: src,
		holder: holder,
		server: srv,
		logger: logger,
	}, nil
}

// Start binds the listener and serves requests.
//
// Start is a blocking call that runs until the provided context is
// cancelled, then waits for in-flight requests to finish (up to 5 seconds).
//
// Returns nil on graceful shutdown, or an error if the listener cannot be
// bound.
func (b *Brochure) Start(ctx context.Context) error {
	// check if context already cancelled
	if ctx.Err() != nil {
		return nil
	}

	b.logger.Info("brochure starting", "addr", b.holder.Current().Listen.Addr())

	if err := b.server.Start(ctx); err != nil {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	<-ctx.Done()
	<-b.server.Done()
	b.logger.Info("brochure stopped")
	return nil
}

// Reload reads templates and error pages again and, if that succeeds,
// switches every subsequent request to the new content.
//
// On failure the running content is kept and the error is returned.
// The listen address is not changed by a reload.
func (b *Brochure) Reload() error {
	b.reloadMu.Lock()
	defer b.reloadMu.Unlock()

	next, err := state.Load(b.source, b.logger)
	if err != nil {
		b.logger.Error("reload failed, keeping current content", "error", err)
		return fmt.Errorf("failed to reload site: %w", err)
	}
	b.holder.Swap(next)
	b.logger.Info("content reloaded", "templates", len(next.Renderer.Names()))
	return nil
}

// Handler returns the HTTP handler serving all routes, for use with a
// caller-managed [http.Server] or in tests.
func (b *Brochure) Handler() http.Handler {
	return b.server.Handler()
}

// Routes lists the registered routes.
func (b *Brochure) Routes() ([]Route, error) {
	routes, err := b.server.Routes()
	if err != nil {
		return nil, err
	}
	out := make([]Route, len(routes))
	for i, r := range routes {
		out[i] = Route{Method: r.Method, Pattern: r.Pattern}
	}
	return out, nil
}

// Addr returns the configured listen address in host:port form.
func (b *Brochure) Addr() string {
	return b.holder.Current().Listen.Addr()
}

// ContentDir returns the absolute content directory.
func (b *Brochure) ContentDir() string {
	return b.holder.Current().ContentDir
}

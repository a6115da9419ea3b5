package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/jpalmerr/brochure/internal/metrics"
	"github.com/jpalmerr/brochure/internal/state"
)

const shutdownTimeout = 5 * time.Second

// ErrAlreadyStarted is returned by [Server.Start] on a server that has been
// started before.
var ErrAlreadyStarted = errors.New("server already started")

// Page binds a route to a page template.
type Page struct {
	// Path is the route, e.g. "/".
	Path string

	// Template is the page template rendered inside the layout.
	Template string

	// Title is passed to the template as .Data.title.
	Title string
}

// DefaultPages is the page table used when [Options.Pages] is empty.
var DefaultPages = []Page{
	{Path: "/", Template: "index.html", Title: "Welcome"},
}

// ErrInvalidPagePath is returned for a page path that cannot be registered
// as a page route.
var ErrInvalidPagePath = errors.New("invalid page path")

// reservedPaths are served by built-in handlers.
var reservedPaths = map[string]struct{}{
	"/assets":  {},
	"/healthz": {},
	"/metrics": {},
}

// reservedPrefixes cover the asset wildcard and the session and user routes.
var reservedPrefixes = []string{"/assets/", "/sessions/", "/users/"}

// ValidatePagePath reports whether path can be used for a page route. A page
// path is a literal path: it starts with '/', has no route parameters or
// wildcards, and does not overlap a built-in route.
func ValidatePagePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("%w: %q must start with '/'", ErrInvalidPagePath, path)
	}
	if strings.ContainsAny(path, "*{}") {
		return fmt.Errorf("%w: %q must not contain '*', '{' or '}'", ErrInvalidPagePath, path)
	}
	if _, ok := reservedPaths[path]; ok {
		return fmt.Errorf("%w: %q is a built-in route", ErrInvalidPagePath, path)
	}
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return fmt.Errorf("%w: %q is below the built-in %s routes", ErrInvalidPagePath, path, prefix)
		}
	}
	return nil
}

// Options configures a [Server].
type Options struct {
	// Pages are the page routes. Defaults to [DefaultPages].
	Pages []Page

	// ReadTimeout and WriteTimeout are passed to [http.Server]. Zero means
	// no timeout.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Metrics records request and pipeline metrics and is served at
	// "/metrics". Nil disables both.
	Metrics *metrics.Metrics
}

// Route is one registered method and pattern.
type Route struct {
	Method  string
	Pattern string
}

// Server handles HTTP requests for brochure.
//
// The server is designed for graceful shutdown via context cancellation.
type Server struct {
	holder  *state.Holder
	opts    Options
	logger  *slog.Logger
	router  chi.Router
	metrics *metrics.Metrics

	mu         sync.Mutex
	started    bool
	httpServer *http.Server
	addr       net.Addr
	done       chan struct{}
}

// NewServer creates a new HTTP [Server] reading state from holder.
//
// The router is built immediately; the server is not started until
// [Server.Start] is called. Every page path must pass [ValidatePagePath]
// and appear only once.
func NewServer(holder *state.Holder, opts Options, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(opts.Pages) == 0 {
		opts.Pages = DefaultPages
	}

	seen := make(map[string]struct{}, len(opts.Pages))
	for _, p := range opts.Pages {
		if err := ValidatePagePath(p.Path); err != nil {
			return nil, err
		}
		if _, dup := seen[p.Path]; dup {
			return nil, fmt.Errorf("%w: duplicate path %q", ErrInvalidPagePath, p.Path)
		}
		seen[p.Path] = struct{}{}
	}

	s := &Server{
		holder:  holder,
		opts:    opts,
		logger:  logger,
		metrics: opts.Metrics,
		done:    make(chan struct{}),
	}
	s.router = s.routes()
	return s, nil
}

// Handler returns the router with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Routes lists every registered route in registration order of the router.
func (s *Server) Routes() ([]Route, error) {
	var routes []Route
	err := chi.Walk(s.router, func(method, pattern string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, Route{Method: method, Pattern: pattern})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk routes: %w", err)
	}
	return routes, nil
}

// Start begins serving HTTP requests in a background goroutine.
//
// Start is non-blocking and returns immediately after confirming the server
// is listening on the address of the current state. The server will continue
// running until the context is cancelled, at which point it initiates a
// graceful shutdown with a 5-second timeout; [Server.Done] is closed once
// that has finished.
//
// Returns an error if the server fails to bind or has already been started.
// A Server can be started once.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return ErrAlreadyStarted
	}

	addr := s.holder.Current().Listen.Addr()

	// create listener first to verify port availability synchronously
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", addr, err)
	}

	httpServer := &http.Server{
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn),
		// BaseContext derives all request contexts from the server context.
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	s.started = true
	s.httpServer = httpServer
	s.addr = ln.Addr()

	s.logger.Info("listening", "url", fmt.Sprintf("http://%s/", ln.Addr()))

	served := make(chan struct{})
	go func() {
		defer close(served)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("http server error", "error", err)
		}
	}()

	// shutdown on context cancellation
	go func() {
		defer close(s.done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("http server shutdown error", "error", err)
		}
		<-served
	}()

	return nil
}

// Addr returns the address the server is listening on, or nil before
// [Server.Start] succeeded.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addr
}

// Done is closed when the server has shut down after a successful
// [Server.Start].
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.metrics.Middleware)
	r.Use(s.accessLog)
	r.Use(s.recoverer)

	for _, p := range s.opts.Pages {
		r.Get(p.Path, s.handlePage(p))
	}
	r.Get("/assets/*", s.handleAsset)

	r.Get("/sessions/new", s.handleStub("sessions.new"))
	r.Post("/sessions/create", s.handleStub("sessions.create"))
	r.Get("/users/{id}/edit", s.handleStub("users.edit"))
	r.Post("/users/{id}/update", s.handleStub("users.update"))

	r.Get("/healthz", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleMethodNotAllowed)
	return r
}

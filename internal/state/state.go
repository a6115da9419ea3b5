package state

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jpalmerr/brochure/internal/assets"
	"github.com/jpalmerr/brochure/internal/pages"
	"github.com/jpalmerr/brochure/internal/render"
)

// Defaults applied by [Load] to empty [Source] fields.
const (
	DefaultListenIP        = "127.0.0.1"
	DefaultTemplatesDir    = "templates"
	DefaultLayout          = "layouts/application.html"
	DefaultNotFoundPage    = "static/not_found.html"
	DefaultServerErrorPage = "static/server_error.html"
)

// Source describes where the state is loaded from.
//
// Relative paths are resolved against ContentDir, which itself defaults to
// the working directory.
type Source struct {
	ListenIP   string
	ListenPort int

	ContentDir        string
	TemplatesDir      string
	TemplateExtension string
	Layout            string
	NotFoundPage      string
	ServerErrorPage   string
	AssetErrors       assets.Mode
}

// Listen is the address the server binds to.
type Listen struct {
	IP   string
	Port int
}

// Addr returns the address in host:port form.
func (l Listen) Addr() string {
	return net.JoinHostPort(l.IP, strconv.Itoa(l.Port))
}

// State is the immutable application state.
type State struct {
	Listen     Listen
	Renderer   *render.Engine
	Layout     string
	ErrorPages pages.ErrorPages
	ContentDir string
	Assets     *assets.Resolver
}

// Load builds a [State] from disk.
//
// It fails if the content directory does not exist, if the templates cannot
// be loaded, if the layout is not among them, or if either error page cannot
// be read. The server must not start without a State.
func Load(src Source, logger *slog.Logger) (*State, error) {
	if logger == nil {
		logger = slog.Default()
	}
	src = src.withDefaults()

	contentDir := src.ContentDir
	if contentDir == "" {
		contentDir = "."
	}
	contentDir, err := filepath.Abs(contentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve content dir: %w", err)
	}
	info, err := os.Stat(contentDir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", contentDir)
	}

	if net.ParseIP(src.ListenIP) == nil {
		return nil, fmt.Errorf("invalid listen ip %q", src.ListenIP)
	}
	if src.ListenPort < 0 || src.ListenPort > 65535 {
		return nil, fmt.Errorf("listen port must be between 0 and 65535, got %d", src.ListenPort)
	}

	templatesDir := resolve(contentDir, src.TemplatesDir)
	renderer, err := render.Load(os.DirFS(templatesDir), render.Options{Extension: src.TemplateExtension})
	if err != nil {
		return nil, fmt.Errorf("templates dir %s: %w", templatesDir, err)
	}
	if !renderer.Has(src.Layout) {
		return nil, fmt.Errorf("layout %q: %w", src.Layout, render.ErrTemplateNotFound)
	}

	errorPages, err := pages.Load(
		resolve(contentDir, src.NotFoundPage),
		resolve(contentDir, src.ServerErrorPage),
	)
	if err != nil {
		return nil, err
	}

	resolver := assets.NewResolver(contentDir, errorPages, src.AssetErrors)
	if _, err := os.Stat(resolver.Root()); errors.Is(err, os.ErrNotExist) {
		logger.Warn("asset directory does not exist", "path", resolver.Root())
	}

	logger.Info("content directory", "path", contentDir)
	logger.Debug("registered templates", "templates", renderer.Names())

	return &State{
		Listen:     Listen{IP: src.ListenIP, Port: src.ListenPort},
		Renderer:   renderer,
		Layout:     src.Layout,
		ErrorPages: errorPages,
		ContentDir: contentDir,
		Assets:     resolver,
	}, nil
}

func (s Source) withDefaults() Source {
	if s.ListenIP == "" {
		s.ListenIP = DefaultListenIP
	}
	if s.TemplatesDir == "" {
		s.TemplatesDir = DefaultTemplatesDir
	}
	if s.Layout == "" {
		s.Layout = DefaultLayout
	}
	if s.NotFoundPage == "" {
		s.NotFoundPage = DefaultNotFoundPage
	}
	if s.ServerErrorPage == "" {
		s.ServerErrorPage = DefaultServerErrorPage
	}
	return s
}

func resolve(base, p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

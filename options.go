package brochure

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/jpalmerr/brochure/internal/assets"
	"github.com/jpalmerr/brochure/internal/server"
)

// AssetErrors selects how failed asset reads are reported.
type AssetErrors string

const (
	// AssetErrorsCollapse answers every failed asset read with 500 and the
	// server error page. This is the default.
	AssetErrorsCollapse AssetErrors = "collapse"

	// AssetErrorsClassify answers a missing file with 404 and the not found
	// page, a permission error with 403, and anything else with 500.
	AssetErrorsClassify AssetErrors = "classify"
)

// Page is a route rendered from a page template.
type Page struct {
	Path     string
	Template string
	Title    string
}

// bConfig holds mutable state during Brochure construction.
type bConfig struct {
	listenIP          string
	port              int
	contentDir        string
	templatesDir      string
	templateExtension string
	layout            string
	notFoundPage      string
	serverErrorPage   string
	assetErrors       assets.Mode
	pages             []Page
	readTimeout       time.Duration
	writeTimeout      time.Duration
	metrics           bool
	logger            *slog.Logger
}

// Option is a function that configures a [Brochure] instance during
// construction. Options return an error if validation fails.
type Option func(*bConfig) error

// WithListen sets the IP address and port the server binds to.
//
// Defaults to 127.0.0.1:4000. Returns an error if ip is not an IP address
// or the port is outside 1-65535.
func WithListen(ip string, port int) Option {
	return func(cfg *bConfig) error {
		if net.ParseIP(ip) == nil {
			return fmt.Errorf("invalid listen ip %q", ip)
		}
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.listenIP = ip
		cfg.port = port
		return nil
	}
}

// WithContentDir sets the directory templates, error pages and assets are
// read from. Relative paths given to other options are resolved against it.
//
// Defaults to the working directory.
func WithContentDir(dir string) Option {
	return func(cfg *bConfig) error {
		if dir == "" {
			return errors.New("content dir cannot be empty")
		}
		cfg.contentDir = dir
		return nil
	}
}

// WithTemplates sets the templates directory and the extension of the files
// registered from it.
//
// Defaults to "templates" and ".html". An empty extension keeps the default.
func WithTemplates(dir, extension string) Option {
	return func(cfg *bConfig) error {
		if dir == "" {
			return errors.New("templates dir cannot be empty")
		}
		cfg.templatesDir = dir
		cfg.templateExtension = extension
		return nil
	}
}

// WithLayout sets the layout every page is rendered inside, named by its path
// within the templates directory.
//
// Defaults to "layouts/application.html".
func WithLayout(name string) Option {
	return func(cfg *bConfig) error {
		if name == "" {
			return errors.New("layout cannot be empty")
		}
		cfg.layout = name
		return nil
	}
}

// WithErrorPages sets the files served for 404 and 500 responses.
//
// Defaults to "static/not_found.html" and "static/server_error.html".
func WithErrorPages(notFound, serverError string) Option {
	return func(cfg *bConfig) error {
		if notFound == "" || serverError == "" {
			return errors.New("error page paths cannot be empty")
		}
		cfg.notFoundPage = notFound
		cfg.serverErrorPage = serverError
		return nil
	}
}

// WithAssetErrors sets how failed asset reads are reported.
//
// Defaults to [AssetErrorsCollapse].
func WithAssetErrors(mode AssetErrors) Option {
	return func(cfg *bConfig) error {
		m, err := assets.ParseMode(string(mode))
		if err != nil {
			return err
		}
		cfg.assetErrors = m
		return nil
	}
}

// WithPage adds a page route. The template is rendered inside the layout
// with the title available as .Data.title.
//
// When no page is added, "/" renders "index.html" titled "Welcome". Adding
// any page replaces that default, so include "/" explicitly if it is wanted.
//
// The path is literal: it must start with '/', must not contain '*', '{' or
// '}', and must not be "/healthz", "/metrics", "/assets" or lie below
// "/assets/", "/sessions/" or "/users/".
func WithPage(path, template, title string) Option {
	return func(cfg *bConfig) error {
		if err := server.ValidatePagePath(path); err != nil {
			return err
		}
		if template == "" {
			return fmt.Errorf("page %s: template cannot be empty", path)
		}
		for _, p := range cfg.pages {
			if p.Path == path {
				return fmt.Errorf("duplicate page path: %q", path)
			}
		}
		cfg.pages = append(cfg.pages, Page{Path: path, Template: template, Title: title})
		return nil
	}
}

// WithTimeouts sets the HTTP server read and write timeouts.
//
// Defaults to 10 seconds each. Zero disables a timeout.
func WithTimeouts(read, write time.Duration) Option {
	return func(cfg *bConfig) error {
		if read < 0 || write < 0 {
			return errors.New("timeouts cannot be negative")
		}
		cfg.readTimeout = read
		cfg.writeTimeout = write
		return nil
	}
}

// WithMetrics enables or disables Prometheus metrics and the "/metrics"
// route. Enabled by default.
func WithMetrics(enabled bool) Option {
	return func(cfg *bConfig) error {
		cfg.metrics = enabled
		return nil
	}
}

// WithLogger sets a custom [slog.Logger] for the Brochure instance.
//
// If not specified, [slog.Default] is used. Returns an error if the logger
// is nil.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *bConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

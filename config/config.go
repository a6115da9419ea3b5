// Package config provides YAML configuration parsing for brochure.
//
// This package enables running brochure as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
// Every key is optional; an empty file yields [Default].
//
// Example configuration:
//
//	listen_ip: 0.0.0.0
//	listen_port: ${PORT:-4000}
//	content_dir: /srv/site
//	asset_errors: collapse
//
//	pages:
//	  - path: /
//	    template: index.html
//	    title: Welcome
//	  - path: /about
//	    template: about.html
//	    title: About us
//
//	read_timeout: 10s
//	write_timeout: 10s
//	log_level: info
//	log_format: json
//	metrics: true
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/brochure/internal/server"
)

// Config is the root configuration structure for brochure.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// ListenIP is the address to bind. Defaults to 127.0.0.1.
	ListenIP string `yaml:"listen_ip"`

	// ListenPort is the TCP port to bind. Defaults to 4000.
	ListenPort int `yaml:"listen_port"`

	// ContentDir holds templates, error pages and static/assets.
	// Defaults to the working directory. When loaded from a file, a
	// relative value is resolved against the file's directory.
	ContentDir string `yaml:"content_dir"`

	// TemplatesDir is the templates directory, relative to ContentDir
	// unless absolute. Defaults to "templates".
	TemplatesDir string `yaml:"templates_dir"`

	// TemplateExt selects the files registered as templates.
	// Defaults to ".html".
	TemplateExt string `yaml:"template_ext"`

	// Layout is the template every page is rendered inside.
	// Defaults to "layouts/application.html".
	Layout string `yaml:"layout"`

	// ErrorPages are the files served on 404 and 500 responses.
	ErrorPages ErrorPagesConfig `yaml:"error_pages"`

	// AssetErrors is "collapse" (every failed asset read is a 500) or
	// "classify" (404 for missing files, 403 for permission errors).
	// Defaults to "collapse".
	AssetErrors string `yaml:"asset_errors"`

	// Pages are the page routes. Defaults to "/" rendering index.html
	// titled "Welcome".
	Pages []PageConfig `yaml:"pages"`

	// ReadTimeout and WriteTimeout bound a single request.
	// Default to 10s; 0s disables the timeout.
	ReadTimeout  Duration `yaml:"read_timeout"`
	WriteTimeout Duration `yaml:"write_timeout"`

	// LogLevel is debug, info, warn or error. Defaults to info.
	LogLevel string `yaml:"log_level"`

	// LogFormat is json or text. Defaults to json.
	LogFormat string `yaml:"log_format"`

	// Metrics enables the Prometheus "/metrics" route. Defaults to true.
	Metrics bool `yaml:"metrics"`
}

// ErrorPagesConfig names the two error page files.
type ErrorPagesConfig struct {
	// NotFound defaults to "static/not_found.html".
	NotFound string `yaml:"not_found"`

	// ServerError defaults to "static/server_error.html".
	ServerError string `yaml:"server_error"`
}

// PageConfig binds a route to a page template.
type PageConfig struct {
	Path     string `yaml:"path"`
	Template string `yaml:"template"`
	Title    string `yaml:"title"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Default returns the configuration used when a key is absent.
func Default() Config {
	return Config{
		ListenIP:     "127.0.0.1",
		ListenPort:   4000,
		TemplatesDir: "templates",
		TemplateExt:  ".html",
		Layout:       "layouts/application.html",
		ErrorPages: ErrorPagesConfig{
			NotFound:    "static/not_found.html",
			ServerError: "static/server_error.html",
		},
		AssetErrors:  "collapse",
		Pages:        []PageConfig{{Path: "/", Template: "index.html", Title: "Welcome"}},
		ReadTimeout:  Duration(10 * time.Second),
		WriteTimeout: Duration(10 * time.Second),
		LogLevel:     "info",
		LogFormat:    "json",
		Metrics:      true,
	}
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		// already have an error, skip processing
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
//
// A relative content_dir is resolved against the directory containing the
// file. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if cfg.ContentDir != "" && !filepath.IsAbs(cfg.ContentDir) {
		cfg.ContentDir = filepath.Join(filepath.Dir(path), cfg.ContentDir)
	}
	return cfg, nil
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in the whole document before it is
// decoded, so they may appear in any value, including listen_port. A
// ${VAR} without a default must be set even inside a comment. Absent keys
// keep their [Default] values.
func Parse(data []byte) (*Config, error) {
	expanded, err := expandEnvVars(string(data))
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field.
func (c *Config) Validate() error {
	if net.ParseIP(c.ListenIP) == nil {
		return fmt.Errorf("listen_ip: invalid IP address %q", c.ListenIP)
	}
	if c.ListenPort < 1 || c.ListenPort > 65535 {
		return fmt.Errorf("listen_port must be between 1 and 65535, got %d", c.ListenPort)
	}

	for field, v := range map[string]string{
		"templates_dir":            c.TemplatesDir,
		"layout":                   c.Layout,
		"error_pages.not_found":    c.ErrorPages.NotFound,
		"error_pages.server_error": c.ErrorPages.ServerError,
	} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("%s cannot be empty", field)
		}
	}

	if c.TemplateExt != "" && !strings.HasPrefix(c.TemplateExt, ".") {
		return fmt.Errorf("template_ext must start with '.', got %q", c.TemplateExt)
	}

	switch c.AssetErrors {
	case "collapse", "classify":
	default:
		return fmt.Errorf("asset_errors must be 'collapse' or 'classify', got %q", c.AssetErrors)
	}

	if len(c.Pages) == 0 {
		return errors.New("at least one page must be defined")
	}
	seen := make(map[string]struct{}, len(c.Pages))
	for i, p := range c.Pages {
		if err := server.ValidatePagePath(p.Path); err != nil {
			return fmt.Errorf("pages[%d]: %w", i, err)
		}
		if p.Template == "" {
			return fmt.Errorf("pages[%d] (%s): template is required", i, p.Path)
		}
		if _, exists := seen[p.Path]; exists {
			return fmt.Errorf("pages[%d]: duplicate path %q", i, p.Path)
		}
		seen[p.Path] = struct{}{}
	}

	if c.ReadTimeout.Duration() < 0 {
		return fmt.Errorf("read_timeout cannot be negative, got %s", c.ReadTimeout.Duration())
	}
	if c.WriteTimeout.Duration() < 0 {
		return fmt.Errorf("write_timeout cannot be negative, got %s", c.WriteTimeout.Duration())
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("log_format must be 'json' or 'text', got %q", c.LogFormat)
	}

	return nil
}

// SlogLevel returns LogLevel as a [slog.Level].
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}

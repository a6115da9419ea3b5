package config

import (
	"log/slog"

	"github.com/jpalmerr/brochure"
)

// BuildOptions converts parsed configuration into SDK options.
//
// Validation of paths and content happens in [brochure.New]; the options
// returned here only carry the values across.
func BuildOptions(cfg *Config, logger *slog.Logger) []brochure.Option {
	opts := []brochure.Option{
		brochure.WithListen(cfg.ListenIP, cfg.ListenPort),
		brochure.WithTemplates(cfg.TemplatesDir, cfg.TemplateExt),
		brochure.WithLayout(cfg.Layout),
		brochure.WithErrorPages(cfg.ErrorPages.NotFound, cfg.ErrorPages.ServerError),
		brochure.WithAssetErrors(brochure.AssetErrors(cfg.AssetErrors)),
		brochure.WithTimeouts(cfg.ReadTimeout.Duration(), cfg.WriteTimeout.Duration()),
		brochure.WithMetrics(cfg.Metrics),
	}

	if cfg.ContentDir != "" {
		opts = append(opts, brochure.WithContentDir(cfg.ContentDir))
	}

	for _, p := range cfg.Pages {
		opts = append(opts, brochure.WithPage(p.Path, p.Template, p.Title))
	}

	if logger != nil {
		opts = append(opts, brochure.WithLogger(logger))
	}

	return opts
}

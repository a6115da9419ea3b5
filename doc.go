// Package brochure provides a small, embeddable web server that renders
// templated pages and serves static assets from a content directory.
//
// A content directory holds everything the server needs:
//
//	templates/
//	  layouts/application.html
//	  index.html
//	static/
//	  not_found.html
//	  server_error.html
//	  assets/...
//
// Templates and error pages are loaded once by [New]. If any of them cannot
// be read, New fails and nothing is bound, so a running server always has
// both error pages available as the fallback for every failure.
//
// # Quick Start
//
//	b, err := brochure.New(brochure.WithContentDir("./site"))
//	if err != nil {
//	    slog.Error("failed to create brochure", "error", err)
//	    os.Exit(1)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	b.Start(ctx) // blocks until context is cancelled
//
// # Configuration
//
// brochure uses the functional options pattern for configuration:
//
//	b, err := brochure.New(
//	    brochure.WithContentDir("/srv/site"),
//	    brochure.WithListen("0.0.0.0", 8080),
//	    brochure.WithPage("/about", "about.html", "About us"),
//	    brochure.WithAssetErrors(brochure.AssetErrorsClassify),
//	)
//
// # Routes
//
//   - GET "/" and every [WithPage] route: the page rendered inside the layout
//   - GET "/assets/*": files from static/assets with a content type from the
//     extension (.css, .js, otherwise application/octet-stream)
//   - GET "/sessions/new", POST "/sessions/create", GET "/users/{id}/edit",
//     POST "/users/{id}/update": registered, answer 501 Not Implemented
//   - GET "/healthz", and GET "/metrics" unless disabled with [WithMetrics]
//
// # Architecture
//
// brochure consists of several internal packages (under internal/):
//
//   - internal/render: html/template loading, layouts and outcome classification
//   - internal/pages: the two error pages and the outcome to response mapping
//   - internal/assets: asset path resolution, reading and content types
//   - internal/state: the immutable application state and its holder
//   - internal/server: chi router, handlers and middleware
//   - internal/metrics: Prometheus collectors
//   - skeleton: an embedded starter site
//
// The internal packages are not part of the public API and may change
// without notice.
package brochure

// Package server provides the HTTP server for brochure.
//
// This package is internal to brochure and handles all HTTP concerns:
//
//   - Pages: each configured page route renders a template inside the layout
//   - Assets: files below {content dir}/static/assets at "/assets/*"
//   - Session and user routes: registered stubs answering 501
//   - Operations: "/healthz" and, when enabled, "/metrics"
//
// Every handler reads the application state through a [state.Holder] and
// turns every failure into one of the two pre-loaded error pages. The server
// supports graceful shutdown via context cancellation, with a 5-second
// timeout for in-flight requests.
//
// Users of the brochure library should not need to interact with this
// package directly. The server is started by [brochure.Brochure.Start].
package server

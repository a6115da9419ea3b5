// Package assets serves static files from {content dir}/static/assets.
//
// A [Resolver] joins the request path onto the asset root, refuses anything
// that would land outside it, reads the whole file and picks a content type
// from the file extension. Read failures become an HTML error page; how they
// map to a status code depends on the resolver's [Mode].
package assets

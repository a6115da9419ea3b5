package assets

import (
	"path/filepath"

	"golang.org/x/net/http/httpguts"
)

const (
	contentTypeCSS         = "text/css"
	contentTypeJavaScript  = "application/javascript"
	contentTypeOctetStream = "application/octet-stream"
	contentTypeHTML        = "text/html"
)

// contentTypes is an allow-list keyed by extension, matched case-sensitively.
var contentTypes = map[string]string{
	".css": contentTypeCSS,
	".js":  contentTypeJavaScript,
}

// ContentType infers the Content-Type for a file from its extension.
//
// Only .css and .js are recognised; everything else, including a file with
// no extension or an upper-case one, is application/octet-stream. A leading
// dot does not start an extension, so ".css" has none.
func ContentType(path string) string {
	ct, ok := contentTypes[extension(path)]
	if !ok {
		return contentTypeOctetStream
	}
	return headerSafe(ct)
}

// headerSafe returns v, or application/octet-stream if v cannot be sent as a
// header value.
func headerSafe(v string) string {
	if v == "" || !httpguts.ValidHeaderFieldValue(v) {
		return contentTypeOctetStream
	}
	return v
}

// extension returns the extension of the base name of path, or "" when the
// only dot in the base name is the leading one.
func extension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

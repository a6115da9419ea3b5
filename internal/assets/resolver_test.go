package assets

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpalmerr/brochure/internal/pages"
)

var testPages = pages.ErrorPages{
	NotFound:    "<h1>not found</h1>",
	ServerError: "<h1>server error</h1>",
}

// newTestResolver creates a content dir with a few assets and a secret file
// next to (not below) the asset root.
func newTestResolver(t *testing.T, mode Mode) (*Resolver, string) {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"static/assets/css/site.css": "body { color: red; }",
		"static/assets/js/site.js":   "console.log(1);",
		"static/assets/logo.png":     "\x89PNG",
		"static/assets/LICENSE":      "MIT",
		"static/assets/upper.CSS":    "p {}",
		"static/secret.txt":          "do not serve",
	}
	for name, content := range files {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return NewResolver(dir, testPages, mode), dir
}

func TestContentType(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"css/site.css", "text/css"},
		{"js/site.js", "application/javascript"},
		{"logo.png", "application/octet-stream"},
		{"LICENSE", "application/octet-stream"},
		{"upper.CSS", "application/octet-stream"},
		{"archive.css.gz", "application/octet-stream"},
		{"dir.js/file", "application/octet-stream"},
		{".css", "application/octet-stream"},
		{"css/.js", "application/octet-stream"},
		{"..css", "text/css"},
		{"site.min.js", "application/javascript"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, ContentType(tt.path))
		})
	}
}

func TestHeaderSafe(t *testing.T) {
	assert.Equal(t, "text/css", headerSafe("text/css"))
	assert.Equal(t, "application/octet-stream", headerSafe("text/css\r\nX-Injected: 1"))
	assert.Equal(t, "application/octet-stream", headerSafe(""))
}

func TestResolve_ServesFiles(t *testing.T) {
	r, _ := newTestResolver(t, ModeCollapse)

	tests := []struct {
		rel         string
		contentType string
		body        string
	}{
		{"css/site.css", "text/css", "body { color: red; }"},
		{"js/site.js", "application/javascript", "console.log(1);"},
		{"logo.png", "application/octet-stream", "\x89PNG"},
		{"LICENSE", "application/octet-stream", "MIT"},
		{"upper.CSS", "application/octet-stream", "p {}"},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got := r.Resolve(context.Background(), tt.rel)
			assert.Equal(t, http.StatusOK, got.Status)
			assert.Equal(t, tt.contentType, got.ContentType)
			assert.Equal(t, []byte(tt.body), got.Body)
		})
	}
}

func TestResolve_CollapseMode(t *testing.T) {
	r, _ := newTestResolver(t, ModeCollapse)

	for _, rel := range []string{
		"missing.css",
		"css",
		"",
		"../secret.txt",
		"css/../../secret.txt",
		"nul\x00.css",
	} {
		t.Run(rel, func(t *testing.T) {
			got := r.Resolve(context.Background(), rel)
			assert.Equal(t, http.StatusInternalServerError, got.Status)
			assert.Equal(t, "text/html", got.ContentType)
			assert.Equal(t, testPages.ServerError, string(got.Body))
		})
	}
}

func TestResolve_ClassifyMode(t *testing.T) {
	r, _ := newTestResolver(t, ModeClassify)

	tests := []struct {
		rel    string
		status int
		body   string
	}{
		{"missing.css", http.StatusNotFound, testPages.NotFound},
		{"../secret.txt", http.StatusNotFound, testPages.NotFound},
		{"css", http.StatusInternalServerError, testPages.ServerError},
	}
	for _, tt := range tests {
		t.Run(tt.rel, func(t *testing.T) {
			got := r.Resolve(context.Background(), tt.rel)
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, "text/html", got.ContentType)
			assert.Equal(t, tt.body, string(got.Body))
		})
	}
}

func TestResolve_ClassifyPermissionDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	r, dir := newTestResolver(t, ModeClassify)
	locked := filepath.Join(dir, "static", "assets", "locked.css")
	require.NoError(t, os.WriteFile(locked, []byte("x"), 0o000))

	got := r.Resolve(context.Background(), "locked.css")
	assert.Equal(t, http.StatusForbidden, got.Status)
	assert.Equal(t, testPages.ServerError, string(got.Body))
}

func TestPath(t *testing.T) {
	r, dir := newTestResolver(t, ModeCollapse)
	root := filepath.Join(dir, "static", "assets")
	assert.Equal(t, root, r.Root())

	p, err := r.Path("css/site.css")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "css", "site.css"), p)

	// an absolute request path is joined, not substituted
	p, err = r.Path("/etc/passwd")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "etc", "passwd"), p)

	for _, rel := range []string{"..", "../secret.txt", "a/../../..", "a\\..\\b", "x\x00"} {
		_, err := r.Path(rel)
		assert.True(t, errors.Is(err, ErrOutsideRoot), "Path(%q) err = %v", rel, err)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeCollapse, m)

	m, err = ParseMode("classify")
	require.NoError(t, err)
	assert.Equal(t, ModeClassify, m)
	assert.Equal(t, "classify", m.String())

	_, err = ParseMode("strict")
	assert.Error(t, err)
}

func TestResolve_Concurrent(t *testing.T) {
	r, _ := newTestResolver(t, ModeCollapse)
	want := r.Resolve(context.Background(), "css/site.css")

	const n = 50
	results := make([]Response, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = r.Resolve(context.Background(), "css/site.css")
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		assert.Equal(t, want, got, "result %d", i)
	}
}

func TestResolve_SymlinkOutsideRoot(t *testing.T) {
	for _, tt := range []struct {
		mode   Mode
		status int
		body   string
	}{
		{ModeCollapse, http.StatusInternalServerError, testPages.ServerError},
		{ModeClassify, http.StatusNotFound, testPages.NotFound},
	} {
		t.Run(tt.mode.String(), func(t *testing.T) {
			r, dir := newTestResolver(t, tt.mode)
			link := filepath.Join(dir, "static", "assets", "leak.css")
			if err := os.Symlink(filepath.Join(dir, "static", "secret.txt"), link); err != nil {
				t.Skipf("symlinks not supported: %v", err)
			}

			got := r.Resolve(context.Background(), "leak.css")
			assert.Equal(t, tt.status, got.Status)
			assert.Equal(t, "text/html", got.ContentType)
			assert.Equal(t, tt.body, string(got.Body))
			assert.NotContains(t, string(got.Body), "do not serve")
		})
	}
}

func TestResolve_SymlinkInsideRoot(t *testing.T) {
	r, dir := newTestResolver(t, ModeCollapse)
	link := filepath.Join(dir, "static", "assets", "alias.css")
	if err := os.Symlink(filepath.Join(dir, "static", "assets", "css", "site.css"), link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	got := r.Resolve(context.Background(), "alias.css")
	assert.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "text/css", got.ContentType)
	assert.Equal(t, "body { color: red; }", string(got.Body))
}

func TestResolve_Dotfile(t *testing.T) {
	r, dir := newTestResolver(t, ModeCollapse)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "static", "assets", ".css"), []byte("hidden"), 0o644))

	got := r.Resolve(context.Background(), ".css")
	assert.Equal(t, http.StatusOK, got.Status)
	assert.Equal(t, "application/octet-stream", got.ContentType)
	assert.Equal(t, []byte("hidden"), got.Body)
}

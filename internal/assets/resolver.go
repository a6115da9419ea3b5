package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/jpalmerr/brochure/internal/logctx"
	"github.com/jpalmerr/brochure/internal/pages"
)

// ErrOutsideRoot is returned when a requested path would resolve outside
// the asset root.
var ErrOutsideRoot = errors.New("path escapes asset root")

// Mode selects how read failures map to status codes.
type Mode int

const (
	// ModeCollapse answers every failure with 500 and the server error
	// page.
	ModeCollapse Mode = iota

	// ModeClassify answers a missing or rejected file with 404 and the not
	// found page, a permission error with 403, and anything else with 500.
	ModeClassify
)

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeCollapse:
		return "collapse"
	case ModeClassify:
		return "classify"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a configuration name into a [Mode]. The empty string
// is [ModeCollapse].
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "collapse":
		return ModeCollapse, nil
	case "classify":
		return ModeClassify, nil
	default:
		return 0, fmt.Errorf("unknown asset error mode %q (expected 'collapse' or 'classify')", s)
	}
}

// Response is a fully buffered asset response.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Resolver reads assets below a fixed root. It holds no mutable state and
// is safe for concurrent use.
type Resolver struct {
	root       string
	errorPages pages.ErrorPages
	mode       Mode
}

// NewResolver returns a resolver for {contentDir}/static/assets.
func NewResolver(contentDir string, ep pages.ErrorPages, mode Mode) *Resolver {
	return &Resolver{
		root:       filepath.Join(contentDir, "static", "assets"),
		errorPages: ep,
		mode:       mode,
	}
}

// Root returns the directory assets are served from.
func (r *Resolver) Root() string {
	return r.root
}

// Mode returns how the resolver maps read failures.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Path joins rel onto the asset root and returns the cleaned filesystem
// path. It returns [ErrOutsideRoot] if the result is not inside the root.
func (r *Resolver) Path(rel string) (string, error) {
	if strings.IndexByte(rel, 0) != -1 || strings.Contains(rel, `\`) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}

	p := filepath.Join(r.root, filepath.FromSlash(rel))
	if !within(r.root, p) {
		return "", fmt.Errorf("%w: %q", ErrOutsideRoot, rel)
	}
	return p, nil
}

// canonical resolves symlinks in p and checks the result is still inside
// the resolved asset root. Symlinks between files below the root are
// allowed.
func (r *Resolver) canonical(p string) (string, error) {
	root, err := filepath.EvalSymlinks(r.root)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(p)
	if err != nil {
		return "", err
	}
	if !within(root, resolved) {
		return "", fmt.Errorf("%w: %s resolves to %s", ErrOutsideRoot, p, resolved)
	}
	return resolved, nil
}

func within(root, p string) bool {
	return p == root || strings.HasPrefix(p, root+string(filepath.Separator))
}

// Resolve reads the asset at rel and builds the response for it.
func (r *Resolver) Resolve(ctx context.Context, rel string) Response {
	logger := logctx.From(ctx)

	p, err := r.Path(rel)
	if err != nil {
		logger.Warn("rejected asset path", "path", rel, "error", err)
		return r.failure(err)
	}

	resolved, err := r.canonical(p)
	if err != nil {
		logger.Warn("failed to resolve asset", "path", p, "error", err)
		return r.failure(err)
	}

	logger.Info("responding with asset file", "path", p)

	body, err := os.ReadFile(resolved)
	if err != nil {
		logger.Warn("failed to read asset", "path", p, "error", err)
		return r.failure(err)
	}

	return Response{
		Status:      http.StatusOK,
		ContentType: ContentType(p),
		Body:        body,
	}
}

func (r *Resolver) failure(err error) Response {
	resp := Response{
		Status:      http.StatusInternalServerError,
		ContentType: contentTypeHTML,
		Body:        []byte(r.errorPages.ServerError),
	}
	if r.mode != ModeClassify {
		return resp
	}

	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrOutsideRoot):
		resp.Status = http.StatusNotFound
		resp.Body = []byte(r.errorPages.NotFound)
	case errors.Is(err, fs.ErrPermission):
		resp.Status = http.StatusForbidden
	}
	return resp
}

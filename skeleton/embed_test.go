package skeleton

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsSite(t *testing.T) {
	for _, name := range []string{
		"templates/layouts/application.html",
		"templates/index.html",
		"static/not_found.html",
		"static/server_error.html",
		"static/assets/css/site.css",
		"static/assets/js/site.js",
	} {
		data, err := fs.ReadFile(FS(), name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, data, name)
	}
}

func TestWriteTo_WritesEveryFile(t *testing.T) {
	dir := t.TempDir()

	written, err := WriteTo(dir, false)
	require.NoError(t, err)
	assert.Contains(t, written, "templates/index.html")
	assert.Contains(t, written, "static/assets/js/site.js")

	got, err := os.ReadFile(filepath.Join(dir, "static", "assets", "css", "site.css"))
	require.NoError(t, err)
	want, err := fs.ReadFile(FS(), "static/assets/css/site.css")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteTo_RefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	index := filepath.Join(dir, "templates", "index.html")
	require.NoError(t, os.MkdirAll(filepath.Dir(index), 0o755))
	require.NoError(t, os.WriteFile(index, []byte("mine"), 0o644))

	_, err := WriteTo(dir, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExists))

	data, err := os.ReadFile(index)
	require.NoError(t, err)
	assert.Equal(t, "mine", string(data))
}

func TestWriteTo_Force(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteTo(dir, false)
	require.NoError(t, err)

	_, err = WriteTo(dir, true)
	require.NoError(t, err)
}

// Package skeleton provides the default brochure site embedded in the binary.
//
// The embedded tree mirrors what brochure expects to find in its content
// directory at startup:
//
//	templates/
//	  layouts/application.html  - layout wrapping every page
//	  index.html                - home page
//	static/
//	  not_found.html            - 404 error page
//	  server_error.html         - 500 error page
//	  assets/css/site.css
//	  assets/js/site.js
//
// `brochure init` writes it to disk with [WriteTo]; tests use it to get a
// known-good site without checking fixtures in twice.
package skeleton

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

//go:embed all:site
var files embed.FS

// ErrExists is returned by [WriteTo] when a file is already present and
// overwriting was not requested.
var ErrExists = errors.New("file already exists")

// FS returns the site tree rooted at the content directory.
func FS() fs.FS {
	sub, err := fs.Sub(files, "site")
	if err != nil {
		// "site" is a constant embedded directory
		panic(err)
	}
	return sub
}

// WriteTo copies the skeleton into dir, creating directories as needed.
//
// Existing files are left untouched and reported as [ErrExists] unless force
// is set. It returns the slash-separated paths it wrote.
func WriteTo(dir string, force bool) ([]string, error) {
	site := FS()
	var written []string

	err := fs.WalkDir(site, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		target := filepath.Join(dir, filepath.FromSlash(p))
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}

		if !force {
			if _, err := os.Stat(target); err == nil {
				return fmt.Errorf("%w: %s", ErrExists, target)
			}
		}

		data, err := fs.ReadFile(site, p)
		if err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		written = append(written, p)
		return nil
	})
	if err != nil {
		return written, err
	}
	return written, nil
}

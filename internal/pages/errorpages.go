package pages

import (
	"errors"
	"fmt"
	"os"
)

// ErrEmptyPage is returned when an error page file exists but has no content.
var ErrEmptyPage = errors.New("error page is empty")

// ErrorPages holds the pre-loaded HTML bodies served on failures.
type ErrorPages struct {
	// NotFound is served with 404 responses.
	NotFound string

	// ServerError is served with 500 responses, and is the fallback for
	// every failure that is not a missing page.
	ServerError string
}

// Load reads both error pages from disk.
//
// It fails if either file cannot be read or is empty.
func Load(notFoundPath, serverErrorPath string) (ErrorPages, error) {
	notFound, err := os.ReadFile(notFoundPath)
	if err != nil {
		return ErrorPages{}, fmt.Errorf("failed to read not found page: %w", err)
	}
	serverError, err := os.ReadFile(serverErrorPath)
	if err != nil {
		return ErrorPages{}, fmt.Errorf("failed to read server error page: %w", err)
	}

	ep := ErrorPages{
		NotFound:    string(notFound),
		ServerError: string(serverError),
	}
	if err := ep.Validate(); err != nil {
		return ErrorPages{}, err
	}
	return ep, nil
}

// Validate reports whether both pages have content.
func (ep ErrorPages) Validate() error {
	if ep.NotFound == "" {
		return fmt.Errorf("not found page: %w", ErrEmptyPage)
	}
	if ep.ServerError == "" {
		return fmt.Errorf("server error page: %w", ErrEmptyPage)
	}
	return nil
}

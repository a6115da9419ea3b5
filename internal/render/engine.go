package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jpalmerr/brochure/internal/logctx"
)

const (
	// DefaultExtension is the file extension registered when [Options]
	// does not name one.
	DefaultExtension = ".html"

	tracerName = "github.com/jpalmerr/brochure/internal/render"
)

// ErrTemplateNotFound is returned (wrapped) when a template name is not
// registered with the [Engine].
var ErrTemplateNotFound = errors.New("template not found")

// Options controls how [Load] discovers templates.
type Options struct {
	// Extension selects which files are parsed as templates.
	// Defaults to [DefaultExtension].
	Extension string
}

// Engine holds a parsed, immutable set of templates.
//
// An Engine is safe for concurrent use by multiple goroutines.
type Engine struct {
	set    *template.Template
	names  []string
	tracer trace.Tracer
}

// Load walks fsys and parses every file with the configured extension.
//
// It fails if fsys cannot be walked (for example when the templates
// directory does not exist) or if any template fails to parse.
func Load(fsys fs.FS, opts Options) (*Engine, error) {
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	e := &Engine{tracer: otel.Tracer(tracerName)}

	// missingkey=error turns a payload without a referenced key into an
	// execution error instead of rendering "<no value>"
	set := template.New("").
		Option("missingkey=error").
		Funcs(template.FuncMap{"partial": e.partial})

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ext {
			return nil
		}

		contents, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read template %q: %w", p, err)
		}
		if _, err := set.New(p).Parse(string(contents)); err != nil {
			return fmt.Errorf("failed to parse template %q: %w", p, err)
		}
		e.names = append(e.names, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	sort.Strings(e.names)
	e.set = set
	return e, nil
}

// Names returns the sorted names of the template files that were loaded.
func (e *Engine) Names() []string {
	cp := make([]string, len(e.names))
	copy(cp, e.names)
	return cp
}

// Has reports whether name is a registered template, either a loaded file
// or a block it defines.
func (e *Engine) Has(name string) bool {
	return name != "" && e.set.Lookup(name) != nil
}

// Render executes layout with a [Data] envelope naming page and carrying
// payload.
//
// Failures other than a missing template are logged at error level through
// the logger in ctx (see [logctx.From]).
func (e *Engine) Render(ctx context.Context, layout, page string, payload any) Outcome {
	ctx, span := e.tracer.Start(ctx, "render.page",
		trace.WithAttributes(
			attribute.String("render.layout", layout),
			attribute.String("render.page", page),
		),
	)
	defer span.End()

	outcome := e.render(layout, page, payload)
	span.SetAttributes(attribute.String("render.outcome", outcome.Kind.String()))

	switch outcome.Kind {
	case TemplateNotFound:
		logctx.From(ctx).Debug("template not found",
			"layout", layout,
			"page", page,
			"error", outcome.Err,
		)
	case RenderFailure:
		span.RecordError(outcome.Err)
		span.SetStatus(codes.Error, "render failed")
		logctx.From(ctx).Error("internal server error",
			"layout", layout,
			"page", page,
			"error", outcome.Err,
		)
	}

	return outcome
}

func (e *Engine) render(layout, page string, payload any) Outcome {
	for _, name := range []string{layout, page} {
		if !e.Has(name) {
			return Outcome{
				Kind: TemplateNotFound,
				Err:  fmt.Errorf("%w: %q", ErrTemplateNotFound, name),
			}
		}
	}

	var buf bytes.Buffer
	err := e.set.ExecuteTemplate(&buf, layout, Data{Page: page, Data: payload})
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return Outcome{Kind: TemplateNotFound, Err: err}
		}
		return Outcome{Kind: RenderFailure, Err: err}
	}

	return Outcome{Kind: Success, HTML: buf.String()}
}

// partial renders a registered template in place. Layouts use it to
// include the page named in the envelope.
func (e *Engine) partial(name string, data any) (template.HTML, error) {
	if !e.Has(name) {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := e.set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

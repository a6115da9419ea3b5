package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/jpalmerr/brochure/internal/logctx"
	"github.com/jpalmerr/brochure/internal/pages"
)

// handlePage renders p inside the layout of the current state.
func (s *Server) handlePage(p Page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := s.holder.Current()

		payload := map[string]any{"title": p.Title}
		outcome := st.Renderer.Render(r.Context(), st.Layout, p.Template, payload)
		s.metrics.ObserveRender(p.Template, outcome.Kind.String())

		resp := pages.Build(outcome, st.ErrorPages)
		s.writeHTML(w, r, resp.Status, resp.Body)
	}
}

// handleAsset serves a file below the asset root.
func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	st := s.holder.Current()

	rel := chi.URLParam(r, "*")
	// chi matches on the raw path when it differs from the decoded one, so
	// the wildcard is still percent-encoded in that case
	if r.URL.RawPath != "" {
		decoded, err := url.PathUnescape(rel)
		if err != nil {
			s.writeHTML(w, r, http.StatusNotFound, st.ErrorPages.NotFound)
			s.metrics.ObserveAsset(http.StatusNotFound)
			return
		}
		rel = decoded
	}

	resp := st.Assets.Resolve(r.Context(), rel)
	s.metrics.ObserveAsset(resp.Status)

	w.Header().Set("Content-Type", resp.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(resp.Body)))
	w.WriteHeader(resp.Status)
	if _, err := w.Write(resp.Body); err != nil {
		logctx.From(r.Context()).Error("failed to write asset response", "error", err)
	}
}

// handleStub answers a registered route that has no behaviour yet.
func (s *Server) handleStub(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		attrs := []any{"route", name}
		if id := chi.URLParam(r, "id"); id != "" {
			attrs = append(attrs, "id", id)
		}
		logctx.From(r.Context()).Debug("stub route called", attrs...)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotImplemented)
		_, _ = w.Write([]byte("not implemented\n"))
	}
}

// handleHealth reports that the process is serving.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")

	if err := json.NewEncoder(w).Encode(map[string]string{"status": "ok"}); err != nil {
		logctx.From(r.Context()).Error("failed to encode health response", "error", err)
	}
}

// handleNotFound serves the not found page for unmatched routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeHTML(w, r, http.StatusNotFound, s.holder.Current().ErrorPages.NotFound)
}

// handleMethodNotAllowed answers a known path requested with the wrong
// method. The body is the not found page.
func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	s.writeHTML(w, r, http.StatusMethodNotAllowed, s.holder.Current().ErrorPages.NotFound)
}

func (s *Server) writeHTML(w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		logctx.From(r.Context()).Error("failed to write page response", "error", err)
	}
}

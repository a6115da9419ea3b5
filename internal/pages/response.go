package pages

import (
	"net/http"

	"github.com/jpalmerr/brochure/internal/render"
)

// Response is the status and HTML body for a page request.
type Response struct {
	Status int
	Body   string
}

// Build maps a render outcome to a response.
//
// A missing template becomes a 404 with the not found page. Every other
// failure, including a Kind this function does not know about, becomes a 500
// with the server error page. The outcome's error is never written to the
// body.
func Build(o render.Outcome, ep ErrorPages) Response {
	switch o.Kind {
	case render.Success:
		return Response{Status: http.StatusOK, Body: o.HTML}
	case render.TemplateNotFound:
		return Response{Status: http.StatusNotFound, Body: ep.NotFound}
	default:
		return Response{Status: http.StatusInternalServerError, Body: ep.ServerError}
	}
}

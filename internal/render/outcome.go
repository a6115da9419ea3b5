package render

// Kind classifies the result of a render attempt.
type Kind int

const (
	// Success means HTML was produced.
	Success Kind = iota

	// TemplateNotFound means the layout, the page, or a partial the page
	// asked for is not registered.
	TemplateNotFound

	// RenderFailure covers every other error: bad data shape, a missing
	// key in the payload, a failing template function.
	RenderFailure
)

// String returns the label used for logs and metrics.
func (k Kind) String() string {
	switch k {
	case Success:
		return "success"
	case TemplateNotFound:
		return "template_not_found"
	case RenderFailure:
		return "render_failure"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single [Engine.Render] call.
//
// HTML is set only when Kind is [Success]. Err carries the diagnostic for the
// other kinds; it is meant for logs and must never reach a response body.
type Outcome struct {
	Kind Kind
	HTML string
	Err  error
}

// Data is the envelope a layout template is executed with.
//
// Page is the name of the page template the layout should include, Data is
// the route-specific payload.
type Data struct {
	Page string
	Data any
}

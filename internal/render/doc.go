// Package render turns a page name and a payload into HTML.
//
// Templates are loaded once from an [io/fs.FS] by [Load] and registered
// under their slash-separated path within it, so a tree like
//
//	templates/
//	  layouts/application.html
//	  index.html
//
// yields the names "layouts/application.html" and "index.html". A page is
// always rendered through a layout: the layout receives a [Data] envelope and
// pulls the page in with the partial function:
//
//	<body>{{ partial .Page . }}</body>
//
// [Engine.Render] never fails with a Go error. It returns an [Outcome] that
// distinguishes a missing template from every other failure, so the caller
// can map each to a response without inspecting error strings.
package render

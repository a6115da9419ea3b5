// Package state builds and holds the application state shared by every
// request handler.
//
// A [State] is loaded once from disk by [Load] and is never modified after
// that. Handlers read it through a [Holder], which guards a pointer to the
// current State with a read-write lock. Reconfiguration builds a new State
// and swaps the pointer; fields are never changed in place, so a handler
// that obtained a State keeps a consistent view for the rest of its request.
package state

// Package logctx carries a request-scoped [slog.Logger] through a
// [context.Context].
//
// The server's request middleware stores a logger tagged with the request ID;
// anything further down the call chain (the renderer, the asset resolver)
// retrieves it with [From] so its log lines correlate with the access log.
package logctx

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With returns a copy of ctx carrying logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// From returns the logger stored in ctx, or [slog.Default] if there is none.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

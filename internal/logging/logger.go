// Package logging is the structured logger shared by server and client.
package logging

import "context"

// Logger takes a message followed by alternating keys and values:
//
//	log.Warn(ctx, "slide not found in presentation, skipped", "slide_id", id)
//
// Records written with a context from ContextWithRequestID carry its
// request_id.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}

type requestIDKey struct{}

// ContextWithRequestID returns a copy of ctx tagged with a request id.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestID returns the id stored by ContextWithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

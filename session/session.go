// Package session carries the active user identity through a context value.
// There is no process-wide current-user slot; each call chain owns its
// identity, so concurrent sessions in one process do not interfere.
package session

import "context"

type contextKey struct{}

// WithUsername returns a context carrying the active username.
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, contextKey{}, username)
}

// Username returns the active username, or "" when no session is attached.
func Username(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return ""
}

package common

import (
	"context"
)

// RequestContext holds per-request values injected by the HTTP middleware.
// When absent (nil), callers fall back to config defaults.
type RequestContext struct {
	CorrelationID string
	RemoteAddr    string
}

type contextKey int

const requestContextKey contextKey = iota

// WithRequestContext stores a RequestContext in the context.
func WithRequestContext(ctx context.Context, rc *RequestContext) context.Context {
	return context.WithValue(ctx, requestContextKey, rc)
}

// RequestContextFromContext retrieves the RequestContext from context, or nil if absent.
func RequestContextFromContext(ctx context.Context) *RequestContext {
	rc, _ := ctx.Value(requestContextKey).(*RequestContext)
	return rc
}

// ResolveCorrelationID returns the correlation ID from context, or "" when
// the call did not come through the HTTP middleware.
func ResolveCorrelationID(ctx context.Context) string {
	if rc := RequestContextFromContext(ctx); rc != nil {
		return rc.CorrelationID
	}
	return ""
}

// Package requestcontext carries request-scoped values between middleware and
// services without a net/http dependency. Middleware writes, services read,
// and tests inject values directly through the With functions:
//
//	ctx = requestcontext.WithClientMetadata(ctx, "203.0.113.9", "test-agent")
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"
)

type ctxKey int

const (
	subjectKey ctxKey = iota
	clientIPKey
	userAgentKey
	requestIDKey
	requestTimeKey
)

func value[T any](ctx context.Context, key ctxKey) T {
	v, _ := ctx.Value(key).(T)
	return v
}

// Subject returns the authenticated subject identifier, or "" when the
// request is unauthenticated.
func Subject(ctx context.Context) string {
	return value[string](ctx, subjectKey)
}

func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// ClientIP returns the client address captured by the metadata middleware.
func ClientIP(ctx context.Context) string {
	return value[string](ctx, clientIPKey)
}

// UserAgent returns the raw User-Agent header captured by the metadata
// middleware.
func UserAgent(ctx context.Context) string {
	return value[string](ctx, userAgentKey)
}

// WithClientMetadata injects client IP and User-Agent together, the way the
// middleware sets them.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey, clientIP)
	return context.WithValue(ctx, userAgentKey, userAgent)
}

// RequestID returns the correlation ID assigned to this request.
func RequestID(ctx context.Context) string {
	return value[string](ctx, requestIDKey)
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// Now returns the request-scoped clock. One request observes one timestamp,
// however many components ask. Outside a request it falls back to the wall
// clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime pins the request clock, for middleware and for tests that need
// deterministic timestamps.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey, t)
}

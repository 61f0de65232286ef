package slogx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/cmsadmin/pkg/idx"
)

// RequestIDHeader carries the request id between the console, the admin
// server and the backends.
const RequestIDHeader = "X-Request-ID"

type (
	loggerKey    struct{}
	requestIDKey struct{}
)

// WithContext stores logger in ctx.
func WithContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// FromContext returns the logger stored in ctx or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	l, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return l
}

// WithRequestID records reqID in ctx and tags the context logger with it.
// Outgoing API calls made with ctx forward the same id.
func WithRequestID(ctx context.Context, reqID string) context.Context {
	ctx = context.WithValue(ctx, requestIDKey{}, reqID)
	return WithContext(ctx, FromContext(ctx).With("req_id", reqID))
}

// RequestID returns the id stored by WithRequestID, or "".
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDOrNew returns the id stored in ctx, minting a fresh one if there
// is none.
func RequestIDOrNew(ctx context.Context) string {
	if id := RequestID(ctx); id != "" {
		return id
	}
	return idx.New().String()
}

// incomingRequestID keeps the caller's id when present.
func incomingRequestID(r *http.Request) string {
	if id := r.Header.Get(RequestIDHeader); id != "" {
		return id
	}
	return idx.New().String()
}

package logger

import (
	"context"

	"go.uber.org/zap"
)

// loggerKey is the private context key for request-scoped loggers.
type loggerKey struct{}

// NewContext returns a child context carrying the logger. Transport
// middleware uses it to attach a request-tagged logger before handing
// the request to a handler.
func NewContext(ctx context.Context, log *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, log)
}

// FromContext returns the logger carried by ctx. Callers always get a
// usable logger: a context without one yields a no-op.
func FromContext(ctx context.Context) *zap.Logger {
	if log, ok := ctx.Value(loggerKey{}).(*zap.Logger); ok && log != nil {
		return log
	}
	return zap.NewNop()
}

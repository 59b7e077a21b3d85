package md2pdf

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
)

// ctxKey is the type for context keys used in this package.
type ctxKey int

const loggerKey ctxKey = 0

// ContextWithLogger returns a context carrying l. Conversions started with
// that context log through l, typically a request-scoped logger.
func ContextWithLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// LoggerFromContext returns the logger attached by ContextWithLogger, or nil.
func LoggerFromContext(ctx context.Context) *log.Logger {
	l, _ := ctx.Value(loggerKey).(*log.Logger)
	return l
}

// loggerFrom returns the logger attached to ctx, or fallback.
func loggerFrom(ctx context.Context, fallback *log.Logger) *log.Logger {
	if l := LoggerFromContext(ctx); l != nil {
		return l
	}
	if fallback != nil {
		return fallback
	}
	return discardLogger
}

var discardLogger = log.New(io.Discard)

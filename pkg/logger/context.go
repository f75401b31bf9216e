package logger

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type contextKey int

const loggerKey contextKey = iota

// WithLogger attaches a logger to ctx so downstream code can pick it up
// through FromContext.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// FromContext resolves the request-scoped logger. The request ID middleware
// stores one on the echo context; the request's own context is checked next,
// and the global logger is the fallback.
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get("logger").(*zap.Logger); ok {
		return l
	}
	if l, ok := c.Request().Context().Value(loggerKey).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}

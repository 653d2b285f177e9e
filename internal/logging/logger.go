// Package logging provides structured logging configuration using log/slog.
//
// Request-scoped loggers pick up chi's request ID so preview server log
// lines for one request can be correlated.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// New builds a logger writing to w.
//
// Level values: "debug", "info", "warn", "error" (default: "info")
// Format values: "text", "json" (default: "text")
func New(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(level),
	}

	var handler slog.Handler
	if strings.ToLower(format) == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel converts a string log level to slog.Level.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// FromContext returns base enriched with the chi request ID carried by ctx,
// if any. A nil base means slog.Default().
func FromContext(ctx context.Context, base *slog.Logger) *slog.Logger {
	if base == nil {
		base = slog.Default()
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		return base.With("request_id", reqID)
	}
	return base
}

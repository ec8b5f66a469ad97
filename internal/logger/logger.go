// Package logger builds the application's *slog.Logger.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a logger configured for env, writing to stdout.
//
// Development (dev): human-readable text output at DEBUG level.
// Staging (staging): JSON output at DEBUG level.
// Production (prod): JSON output at INFO level.
func New(env string) *slog.Logger {
	return NewWithWriter(env, os.Stdout)
}

// NewWithWriter is New writing to w.
func NewWithWriter(env string, w io.Writer) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case "staging":
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	default: // "dev" and anything unrecognised
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
}

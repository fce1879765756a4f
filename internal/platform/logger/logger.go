package logger

import (
	"log/slog"
	"os"
)

// New returns a structured logger tuned for the environment. Production emits
// JSON at info level for log aggregation; everything else gets human-readable
// text at debug level.
func New(environment string) *slog.Logger {
	if environment == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

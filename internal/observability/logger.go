package observability

import (
	"log/slog"
	"os"

	"github.com/sydneypulse/schi-pipeline/internal/config"
)

// NewLogger builds the process-wide slog.Logger from config. JSON output is
// the default so log shippers get structured records; text is for humans
// running batches by hand.
func NewLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if cfg.LogFormat == "text" {
		handler = slog.NewTextHandler(os.Stderr, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// parseLevel maps a config level string to its slog level. Unknown strings
// fall back to info; config validation should have rejected them already.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

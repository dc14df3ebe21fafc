package observability

import (
	"context"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/sydneypulse/schi-pipeline/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		level    string
		expected slog.Level
	}{
		{"debug", "debug", slog.LevelDebug},
		{"info", "info", slog.LevelInfo},
		{"warn", "warn", slog.LevelWarn},
		{"error", "error", slog.LevelError},
		{"unknown falls back to info", "trace", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.level))
		})
	}
}

func TestNewLogger(t *testing.T) {
	cfg := config.New()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"

	logger := NewLogger(cfg)

	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug))
}

func TestMetricsLabels(t *testing.T) {
	m := NewMetricsForTesting()

	m.RowsRead.WithLabelValues("commute").Add(42)
	m.JoinDroppedRows.WithLabelValues("weather").Inc()
	m.IndexRows.Set(7)

	assert.Equal(t, 42.0, testutil.ToFloat64(m.RowsRead.WithLabelValues("commute")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.RowsRead.WithLabelValues("weather")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JoinDroppedRows.WithLabelValues("weather")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.IndexRows))
}

// Package config defines pipeline configuration and its layered loading.
//
// Settings resolve in precedence order (low to high): built-in defaults,
// a YAML file named by SCHI_CONFIG, then SCHI_-prefixed environment
// variables. A .env file in the working directory is folded into the
// environment first, so local runs need no shell exports.
package config

import "time"

// Config holds all pipeline settings.
type Config struct {
	// InputDir is where the cleaned commute/weather/reference CSVs live.
	InputDir string `koanf:"input_dir" validate:"required"`

	// OutputDir receives the feature artifacts and the schi.csv index.
	OutputDir string `koanf:"output_dir" validate:"required"`

	// Weights blends the four SCHI components. Values are raw; the pipeline
	// normalizes them to sum to 1 before blending. Keys must be exactly
	// reliability, mood, rain_comfort, temperature.
	Weights map[string]float64 `koanf:"weights" validate:"required,dive,gte=0"`

	// SevereDelayMin is the delay, in minutes, at or above which a trip
	// counts as severely delayed.
	SevereDelayMin float64 `koanf:"severe_delay_min" validate:"gt=0"`

	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`

	// LogFormat selects the slog handler: json or text.
	LogFormat string `koanf:"log_format" validate:"oneof=json text"`

	// HTTPAddr is the health/metrics listen address, used in scheduled mode.
	HTTPAddr string `koanf:"http_addr" validate:"required"`

	// RefreshInterval re-runs the whole pipeline on this cadence. Zero means
	// run once and exit.
	RefreshInterval time.Duration `koanf:"refresh_interval" validate:"gte=0"`

	// ShutdownTimeout bounds graceful HTTP shutdown in scheduled mode.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// New returns a Config populated with defaults. The default weights favor
// reliability, matching the published SCHI methodology.
func New() *Config {
	return &Config{
		InputDir:  "data/interim",
		OutputDir: "data/processed",
		Weights: map[string]float64{
			"reliability":  0.4,
			"mood":         0.3,
			"rain_comfort": 0.2,
			"temperature":  0.1,
		},
		SevereDelayMin:  10.0,
		LogLevel:        "info",
		LogFormat:       "json",
		HTTPAddr:        ":8080",
		RefreshInterval: 0,
		ShutdownTimeout: 10 * time.Second,
	}
}

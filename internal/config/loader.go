package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/sydneypulse/schi-pipeline/internal/domain"
)

// Load builds a Config by layering defaults, an optional YAML file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if SCHI_CONFIG is set
//  3. env (prefix SCHI_), e.g. SCHI_INPUT_DIR, SCHI_REFRESH_INTERVAL
//
// Weight overrides come from the YAML file (the weights map has nested
// keys, which flat env vars cannot address); per-component file values
// merge over the defaults. Whatever the sources produce must name exactly
// the four SCHI components, or Load fails up front rather than at blend
// time.
func Load() (*Config, error) {
	// Fold a local .env into the environment if one exists. Absence is the
	// normal case outside development.
	_ = godotenv.Load()

	base := New()

	k := koanf.New(".")

	if path := os.Getenv("SCHI_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// Map env keys like SCHI_INPUT_DIR -> input_dir (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SCHI_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "schi_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load env config: %w", err)
	}

	// Unmarshal into a copy so unset keys keep their defaults.
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate applies struct-tag rules plus the weight component-set check, so
// a bad weight vector fails at startup with the full required-versus-present
// mismatch instead of partway through a run.
func validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := domain.Weights(cfg.Weights).Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

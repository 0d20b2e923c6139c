package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environment variables read by Load.
const (
	EnvPrefix  = "COOPER_"
	EnvConfig  = "COOPER_CONFIG"
	EnvDotFile = "COOPER_DOTENV"

	defaultDotFile = ".env"
)

// Load builds a Config by layering, from low to high precedence:
//  1. defaults (New())
//  2. YAML file if COOPER_CONFIG is set
//  3. env (prefix COOPER_), after variables from an optional .env file
//     (COOPER_DOTENV overrides the path) are merged into the process env
func Load(_ context.Context) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	k := koanf.New(".")

	if path := os.Getenv(EnvConfig); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// COOPER_CHART_WIDTH_PX -> chart_width_px; underscores are kept to match the flat tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadDotEnv merges a .env file into the process env without overriding
// variables that are already set. A missing default file is not an error.
func loadDotEnv() error {
	path := os.Getenv(EnvDotFile)
	explicit := path != ""
	if !explicit {
		path = defaultDotFile
	}
	err := godotenv.Load(path)
	switch {
	case err == nil:
		return nil
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("%w: dotenv %s: %w", ErrLoadConfig, path, err)
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ChartWidthPx <= 0 || c.ChartHeightPx <= 0:
		return fmt.Errorf("%w: chart size must be positive, got %dx%d", ErrInvalidConfig, c.ChartWidthPx, c.ChartHeightPx)
	case c.ChartSamples < 2:
		return fmt.Errorf("%w: chart_samples must be at least 2, got %d", ErrInvalidConfig, c.ChartSamples)
	}
	switch strings.ToLower(c.ChartFormat) {
	case "png", "svg":
	default:
		return fmt.Errorf("%w: chart_format must be png or svg, got %q", ErrInvalidConfig, c.ChartFormat)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

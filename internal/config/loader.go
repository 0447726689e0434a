package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New)
//  2. file (YAML) if EDULENS_CONFIG is set
//  3. env (prefix EDULENS_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("EDULENS_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: EDULENS_ADDR, EDULENS_QUEUE_SIZE, ...
	// Map env keys like EDULENS_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("EDULENS_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "edulens_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if cfg.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if cfg.QueueSize < 1 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if cfg.FuzzySimilarity < 0 || cfg.FuzzySimilarity > 100 {
		return fmt.Errorf("%w: fuzzy_similarity must be in [0,100]", ErrInvalidConfig)
	}
	if cfg.ValFraction < 0 || cfg.TestFraction < 0 || cfg.ValFraction+cfg.TestFraction >= 1 {
		return fmt.Errorf("%w: val_fraction and test_fraction must be non-negative and sum below 1", ErrInvalidConfig)
	}
	switch cfg.StoreBackend {
	case StoreMemory, StoreMongo:
	default:
		return fmt.Errorf("%w: unknown store_backend %q", ErrInvalidConfig, cfg.StoreBackend)
	}
	return nil
}

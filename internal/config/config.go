package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

const envPrefix = "BURYDAYS_"

// Config holds the addon's settings.
type Config struct {
	// DBPath is the location of the bury store file.
	DBPath string `koanf:"db_path" validate:"required"`
	// SweepEvery is the 1-in-N chance of sweeping expired records on a
	// reconcile pass.
	SweepEvery int `koanf:"sweep_every" validate:"min=1"`
}

// Load merges configuration from, lowest to highest precedence: flag
// defaults, an optional YAML file, BURYDAYS_* environment variables, and
// explicitly set flags. The flag set must define db-path and sweep-every;
// flag names map to keys by replacing '-' with '_'.
func Load(fs *pflag.FlagSet, configFile string) (*Config, error) {
	k := koanf.New(".")

	// Flag names use '-', koanf keys use '_'.
	flagKey := func(f *pflag.Flag) (string, interface{}) {
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(fs, f)
	}

	if err := k.Load(posflag.ProviderWithFlag(fs, ".", k, flagKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load flag defaults: %w", err)
	}

	// The config file is optional; a missing file is not an error.
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", configFile, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(key string) string {
		return strings.ToLower(strings.TrimPrefix(key, envPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	// Re-apply flags the user actually set so they win over file and env.
	changed := posflag.ProviderWithFlag(fs, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return flagKey(f)
	})
	if err := k.Load(changed, nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

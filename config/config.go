// Package config loads the command line settings from the environment and
// the rule variants from an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"gaia/game"
)

type Config struct {
	LogLevel    string `env:"GAIA_LOG_LEVEL"    envDefault:"info"`
	OptionsFile string `env:"GAIA_OPTIONS_FILE"`
	OutDir      string `env:"GAIA_OUT_DIR"      envDefault:"out"`
	Compress    bool   `env:"GAIA_COMPRESS"`
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := cfg.Level(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Options returns the rule variants of the options file, or the defaults
// when no file is configured.
func (c Config) Options() (game.Options, error) {
	if c.OptionsFile == "" {
		return game.Options{}, nil
	}
	data, err := os.ReadFile(c.OptionsFile)
	if err != nil {
		return game.Options{}, fmt.Errorf("failed to read options file: %w", err)
	}
	return ParseOptions(data)
}

func ParseOptions(data []byte) (game.Options, error) {
	var options game.Options
	if err := yaml.Unmarshal(data, &options); err != nil {
		return game.Options{}, fmt.Errorf("failed to parse options: %w", err)
	}
	if err := options.Validate(); err != nil {
		return game.Options{}, err
	}
	return options, nil
}

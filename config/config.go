// Copyright 2025 Richard Kelsey. All rights reserved.
// See file LICENSE for notices and license.

// Settings for running the stack-to-memory pass.  Values come from a
// YAML file and can be overridden by environment variables:
//     STACKEVADE_DIALECT, STACKEVADE_STACK_LIMIT,
//     STACKEVADE_OPTIMIZE, STACKEVADE_LOG_LEVEL

package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/xyproto/env/v2"
	"gopkg.in/yaml.v3"

	"github.com/s48/stackevade/check"
	"github.com/s48/stackevade/ir"
)

type ConfigT struct {
	Dialect                 string `yaml:"dialect"`
	StackLimit              int    `yaml:"stack_limit"`
	OptimizeStackAllocation bool   `yaml:"optimize_stack_allocation"`
	LogLevel                string `yaml:"log_level"`
}

func Default() *ConfigT {
	return &ConfigT{
		Dialect:    ir.MemoryDialect.Name,
		StackLimit: check.DefaultStackLimit,
		LogLevel:   zerolog.LevelWarnValue,
	}
}

// Fields missing from 'data' keep their default values.

func Parse(data []byte) (*ConfigT, error) {
	return Default().With(data)
}

// A copy of 'config' updated from the YAML in 'data'.

func (config *ConfigT) With(data []byte) (*ConfigT, error) {
	result := *config
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	if err := result.validate(); err != nil {
		return nil, err
	}
	return &result, nil
}

// An empty path gives the defaults.  Environment overrides are
// applied in either case.

func Load(path string) (*ConfigT, error) {
	config := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
		config, err = Parse(data)
		if err != nil {
			return nil, errors.Wrapf(err, "config %s", path)
		}
	}
	config.ApplyEnvironment()
	if err := config.validate(); err != nil {
		return nil, errors.Wrap(err, "environment")
	}
	return config, nil
}

func (config *ConfigT) ApplyEnvironment() {
	config.Dialect = env.Str("STACKEVADE_DIALECT", config.Dialect)
	config.StackLimit = env.Int("STACKEVADE_STACK_LIMIT", config.StackLimit)
	if env.Has("STACKEVADE_OPTIMIZE") {
		config.OptimizeStackAllocation = env.Bool("STACKEVADE_OPTIMIZE")
	}
	config.LogLevel = env.Str("STACKEVADE_LOG_LEVEL", config.LogLevel)
}

func (config *ConfigT) validate() error {
	if ir.LookupDialect(config.Dialect) == nil {
		return errors.Errorf("unknown dialect '%s'", config.Dialect)
	}
	if config.StackLimit <= 0 {
		return errors.Errorf("stack limit must be positive, got %d", config.StackLimit)
	}
	if _, err := zerolog.ParseLevel(config.LogLevel); err != nil {
		return errors.Wrap(err, "log level")
	}
	return nil
}

func (config *ConfigT) LookupDialect() *ir.DialectT {
	return ir.LookupDialect(config.Dialect)
}

func (config *ConfigT) Checker() *check.CheckerT {
	return &check.CheckerT{Limit: config.StackLimit}
}

func (config *ConfigT) NewLogger(out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		level = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out, NoColor: true}).
		Level(level).
		With().Timestamp().Logger()
}

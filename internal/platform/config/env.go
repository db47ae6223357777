// Package config loads seedrand settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every env tag read by ParseEnv, so structs
// declare `env:"COUNT"` and read SEEDRAND_COUNT.
const EnvPrefix = "SEEDRAND_"

// ParseEnv loads configuration from process environment variables.
func ParseEnv(target any) error {
	return ParseEnvFrom(target, nil)
}

// ParseEnvFrom loads configuration from environ instead of the process
// environment. A nil map reads the process environment.
func ParseEnvFrom(target any, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

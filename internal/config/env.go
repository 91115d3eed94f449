// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
)

// EnvPrefix namespaces the environment variables of this project. A
// variable named STATE_SYNC_<NAME> takes precedence over plain <NAME>, so
// several tools can share one environment.
const EnvPrefix = "STATE_SYNC_"

// parseEnv populates cfg from the `env` and `envPrefix` tags of
// [StructuredConfig], applying prefixed variables over unprefixed ones.
func parseEnv(cfg *StructuredConfig) error {
	prefixed := &StructuredConfig{}
	if err := env.ParseWithOptions(prefixed, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("error getting prefixed env configs: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if err := mergo.Merge(cfg, prefixed, mergo.WithOverride); err != nil {
		return fmt.Errorf("error merging env configs: %w", err)
	}
	return nil
}

// pkg/config/env.go
package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables recognised by ApplyEnvironmentOverrides.
const (
	EnvWidth         = "VAMPIRES_WIDTH"
	EnvHeight        = "VAMPIRES_HEIGHT"
	EnvTitle         = "VAMPIRES_TITLE"
	EnvSpawnInterval = "VAMPIRES_SPAWN_INTERVAL_MS"
	EnvMaxHostiles   = "VAMPIRES_MAX_HOSTILES"
	EnvSeed          = "VAMPIRES_SEED"
)

// ApplyEnvironmentOverrides replaces config values with any set environment
// variables and validates the result.
func ApplyEnvironmentOverrides(config *GameConfig) error {
	var err error
	if config.Viewport.Width, err = getEnvInt(EnvWidth, config.Viewport.Width); err != nil {
		return err
	}
	if config.Viewport.Height, err = getEnvInt(EnvHeight, config.Viewport.Height); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvTitle); ok {
		config.Viewport.Title = v
	}
	if config.Spawner.IntervalMs, err = getEnvInt(EnvSpawnInterval, config.Spawner.IntervalMs); err != nil {
		return err
	}
	if config.Spawner.MaxHostiles, err = getEnvInt(EnvMaxHostiles, config.Spawner.MaxHostiles); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvSeed); ok && v != "" {
		seed, perr := strconv.ParseUint(v, 10, 64)
		if perr != nil {
			return fmt.Errorf("invalid %s: %w", EnvSeed, perr)
		}
		config.Spawner.Seed = seed
	}

	return config.Validate()
}

func getEnvInt(key string, fallback int) (int, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

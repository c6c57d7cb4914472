// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every ValidationError.
var ErrInvalidConfig = errors.New("invalid configuration")

// GameConfig contains configuration for a survival session
type GameConfig struct {
	Viewport ViewportConfig `json:"viewport" yaml:"viewport"`
	Player   PlayerConfig   `json:"player" yaml:"player"`
	Weapon   WeaponConfig   `json:"weapon" yaml:"weapon"`
	Spawner  SpawnerConfig  `json:"spawner" yaml:"spawner"`
	Hostile  HostileConfig  `json:"hostile" yaml:"hostile"`
	Assets   AssetsConfig   `json:"assets" yaml:"assets"`
	Terminal TerminalConfig `json:"terminal" yaml:"terminal"`
	Audio    AudioConfig    `json:"audio" yaml:"audio"`
}

// ViewportConfig describes the visible window
type ViewportConfig struct {
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Title  string `json:"title" yaml:"title"`
}

// PlayerConfig contains controlled entity settings
type PlayerConfig struct {
	Speed float64 `json:"speed" yaml:"speed"`
}

// WeaponConfig contains projectile and cooldown settings
type WeaponConfig struct {
	CooldownMs           int     `json:"cooldownMs" yaml:"cooldownMs"`
	ProjectileSpeed      float64 `json:"projectileSpeed" yaml:"projectileSpeed"`
	ProjectileLifetimeMs int     `json:"projectileLifetimeMs" yaml:"projectileLifetimeMs"`
	MuzzleOffset         float64 `json:"muzzleOffset" yaml:"muzzleOffset"`
}

// Cooldown returns the weapon cooldown as a duration.
func (w WeaponConfig) Cooldown() time.Duration {
	return time.Duration(w.CooldownMs) * time.Millisecond
}

// ProjectileLifetime returns how long a projectile lives. Zero means forever.
func (w WeaponConfig) ProjectileLifetime() time.Duration {
	return time.Duration(w.ProjectileLifetimeMs) * time.Millisecond
}

// SpawnerConfig contains hostile spawn settings
type SpawnerConfig struct {
	IntervalMs  int    `json:"intervalMs" yaml:"intervalMs"`
	MaxHostiles int    `json:"maxHostiles" yaml:"maxHostiles"`
	Seed        uint64 `json:"seed" yaml:"seed"`
}

// Interval returns the spawn interval as a duration.
func (s SpawnerConfig) Interval() time.Duration {
	return time.Duration(s.IntervalMs) * time.Millisecond
}

// HostileConfig contains hostile movement and animation settings
type HostileConfig struct {
	Speed        float64 `json:"speed" yaml:"speed"`
	AnimationFPS float64 `json:"animationFps" yaml:"animationFps"`
}

// AssetsConfig locates the map and sprite images on disk
type AssetsConfig struct {
	Root     string   `json:"root" yaml:"root"`
	Map      string   `json:"map" yaml:"map"`
	Variants []string `json:"variants" yaml:"variants"`
}

// MapPath returns the map file joined onto the asset root.
func (a AssetsConfig) MapPath() string {
	return filepath.Join(a.Root, a.Map)
}

// TerminalConfig controls the character-cell frontend
type TerminalConfig struct {
	// Scale is the number of world pixels covered by one terminal column.
	Scale float64 `json:"scale" yaml:"scale"`
}

// AudioConfig controls the sound sink
type AudioConfig struct {
	Enabled bool    `json:"enabled" yaml:"enabled"`
	Volume  float64 `json:"volume" yaml:"volume"`
}

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// LoadConfig loads a configuration from a file. Files ending in .yaml or .yml
// are parsed as YAML, everything else as JSON. Fields missing from the file
// keep their default values.
func LoadConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *GameConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports the first invalid field as a *ValidationError.
func (c *GameConfig) Validate() error {
	switch {
	case c.Viewport.Width <= 0:
		return &ValidationError{Field: "viewport.width", Message: "must be positive"}
	case c.Viewport.Height <= 0:
		return &ValidationError{Field: "viewport.height", Message: "must be positive"}
	case c.Player.Speed < 0:
		return &ValidationError{Field: "player.speed", Message: "must not be negative"}
	case c.Weapon.CooldownMs < 0:
		return &ValidationError{Field: "weapon.cooldownMs", Message: "must not be negative"}
	case c.Weapon.ProjectileSpeed < 0:
		return &ValidationError{Field: "weapon.projectileSpeed", Message: "must not be negative"}
	case c.Weapon.ProjectileLifetimeMs < 0:
		return &ValidationError{Field: "weapon.projectileLifetimeMs", Message: "must not be negative"}
	case c.Spawner.IntervalMs <= 0:
		return &ValidationError{Field: "spawner.intervalMs", Message: "must be positive"}
	case c.Spawner.MaxHostiles < 0:
		return &ValidationError{Field: "spawner.maxHostiles", Message: "must not be negative"}
	case c.Hostile.Speed < 0:
		return &ValidationError{Field: "hostile.speed", Message: "must not be negative"}
	case c.Hostile.AnimationFPS < 0:
		return &ValidationError{Field: "hostile.animationFps", Message: "must not be negative"}
	case c.Terminal.Scale <= 0:
		return &ValidationError{Field: "terminal.scale", Message: "must be positive"}
	case c.Audio.Volume < 0 || c.Audio.Volume > 1:
		return &ValidationError{Field: "audio.volume", Message: "must be between 0 and 1"}
	}
	return nil
}

// DefaultConfig returns a default game configuration
func DefaultConfig() *GameConfig {
	return &GameConfig{
		Viewport: ViewportConfig{
			Width:  1280,
			Height: 720,
			Title:  "Vampires Arise",
		},
		Player: PlayerConfig{
			Speed: 500,
		},
		Weapon: WeaponConfig{
			CooldownMs:           100,
			ProjectileSpeed:      1200,
			ProjectileLifetimeMs: 1000,
			MuzzleOffset:         50,
		},
		Spawner: SpawnerConfig{
			IntervalMs:  300,
			MaxHostiles: 0,
			Seed:        0,
		},
		Hostile: HostileConfig{
			Speed:        200,
			AnimationFPS: 5,
		},
		Assets: AssetsConfig{
			Root:     "assets",
			Map:      "maps/world.tmx",
			Variants: []string{"bat", "blob", "skeleton"},
		},
		Terminal: TerminalConfig{
			Scale: 16,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  0.5,
		},
	}
}

// Package config handles skywatch configuration persistence.
// Configuration is stored in ~/.config/skywatch/config.toml and is also
// writable at runtime from the Settings screen.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/skywatch/config.toml"

// Field bounds enforced by Clamp and by the Settings screen editor.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0

	MinRadiusKM  = 1.0
	MaxRadiusKM  = 500.0
	RadiusStepKM = 5.0

	MinPollSeconds  = 5
	MaxPollSeconds  = 600
	PollStepSeconds = 5

	CoordStep = 0.1
)

// Config is the root configuration; maps to the top level of config.toml.
type Config struct {
	Location LocationConfig `toml:"location"`
	API      APIConfig      `toml:"api"`
	UI       UIConfig       `toml:"ui"`
}

// LocationConfig selects the observer position and detection radius.
type LocationConfig struct {
	// AutoLocate resolves the observer position via IP geolocation at
	// startup; when false, Latitude/Longitude are used directly.
	AutoLocate bool    `toml:"auto_locate"`
	Latitude   float64 `toml:"latitude"`
	Longitude  float64 `toml:"longitude"`
	// DetectionRadiusKM bounds the flight query around the observer.
	DetectionRadiusKM float64 `toml:"detection_radius_km"`
}

// APIConfig holds flight API settings.
type APIConfig struct {
	PollIntervalSeconds int `toml:"poll_interval_seconds"`
}

// UIConfig holds interface defaults.
type UIConfig struct {
	// DefaultScreen is the screen shown once loading clears:
	// "dashboard", "radar", "spotter" or "settings".
	DefaultScreen string `toml:"default_screen"`
}

// PollInterval returns the flight poll cadence as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.API.PollIntervalSeconds) * time.Second
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Location: LocationConfig{
			AutoLocate:        true,
			Latitude:          37.7749,
			Longitude:         -122.4194,
			DetectionRadiusKM: 50,
		},
		API: APIConfig{PollIntervalSeconds: 30},
		UI:  UIConfig{DefaultScreen: "dashboard"},
	}
}

// Load reads the config file at path (default path when empty). A missing
// or unparsable file degrades to defaults; Load never fails the startup.
func Load(path string) Config {
	resolved, err := resolvePath(path)
	if err != nil {
		return Default()
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// First run: write the defaults so the user has a file to edit.
			_ = Save(path, Default())
		}
		return Default()
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default()
	}

	cfg.Clamp()
	return cfg
}

// Save writes the config to path (default path when empty), creating
// directories as needed.
func Save(path string, cfg Config) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	cfg.Clamp()
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(resolved, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Clamp forces every bounded field back into its documented range.
func (c *Config) Clamp() {
	c.Location.Latitude = clampFloat(c.Location.Latitude, MinLatitude, MaxLatitude)
	c.Location.Longitude = clampFloat(c.Location.Longitude, MinLongitude, MaxLongitude)
	c.Location.DetectionRadiusKM = clampFloat(c.Location.DetectionRadiusKM, MinRadiusKM, MaxRadiusKM)

	if c.API.PollIntervalSeconds < MinPollSeconds {
		c.API.PollIntervalSeconds = MinPollSeconds
	}
	if c.API.PollIntervalSeconds > MaxPollSeconds {
		c.API.PollIntervalSeconds = MaxPollSeconds
	}

	switch strings.ToLower(strings.TrimSpace(c.UI.DefaultScreen)) {
	case "dashboard", "radar", "spotter", "settings":
		c.UI.DefaultScreen = strings.ToLower(strings.TrimSpace(c.UI.DefaultScreen))
	default:
		c.UI.DefaultScreen = "dashboard"
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultConfigPath
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}

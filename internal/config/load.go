package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	// Explicit path takes priority over the search locations
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the viewer cannot start with.
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Window.Width, c.Window.Height)
	}
	if c.Camera.ZNear <= 0 || c.Camera.ZFar <= c.Camera.ZNear {
		return fmt.Errorf("invalid clip planes near=%g far=%g", c.Camera.ZNear, c.Camera.ZFar)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("invalid fovy %g", c.Camera.FovY)
	}
	if c.World.GridSize < 0 {
		return fmt.Errorf("invalid grid size %d", c.World.GridSize)
	}
	if c.Assets.LoadWorkers < 1 {
		return fmt.Errorf("load_workers must be at least 1, got %d", c.Assets.LoadWorkers)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "GridViewer")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "GridViewer")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "gridview")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "gridview")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

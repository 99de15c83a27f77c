// Package config reads and writes the machine-local depot configuration.
// It holds identity only; process-wide settings such as the allocation mode
// live in the database.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the flat depot configuration at ~/.depot/config.json.
type Config struct {
	Version  string `json:"version"`
	Operator string `json:"operator,omitempty"` // who runs this install
}

// Path returns the config file location for the given home directory root.
// An empty dir means the user's home directory.
func Path(dir string) (string, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = home
	}
	return filepath.Join(dir, ".depot", "config.json"), nil
}

// Load reads the config file. Returns an error if no config exists; callers
// treat that as "no operator configured".
func Load(dir string) (*Config, error) {
	path, err := Path(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Save writes the config file, creating the .depot directory if needed.
func Save(dir string, cfg *Config) error {
	path, err := Path(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

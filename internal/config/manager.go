package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const DefaultConfigFileName = "config.yaml"

// defaultRetention is how many backups of each server list are kept when the
// config does not say otherwise.
const defaultRetention = 10

// getConfigDir returns the application's configuration directory path.
func getConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "mcptoggle"), nil
}

// Variable to allow mocking in tests.
var getConfigPath = func() (string, error) {
	configDir, err := getConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, DefaultConfigFileName), nil
}

// GetDefaultConfig returns the configuration used when no config.yaml exists
// yet: no clients registered, backups kept beside the config.
func GetDefaultConfig() *Config {
	backupPath := "~/.config/mcptoggle/backups"
	if configDir, err := getConfigDir(); err == nil {
		backupPath = filepath.Join(configDir, "backups")
	}
	return &Config{
		Version: 1,
		Clients: make(map[string]Client),
		Backups: BackupConfig{
			Path:      backupPath,
			Retention: defaultRetention,
		},
	}
}

// LoadConfig loads the application configuration from the default path,
// creating a default file when none exists.
func LoadConfig() (*Config, error) {
	configFilePath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", err)
	}

	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			defaultCfg := GetDefaultConfig()
			if err := SaveConfig(defaultCfg); err != nil {
				return nil, fmt.Errorf("failed to create default config file: %w", err)
			}
			return defaultCfg, nil
		}
		return nil, fmt.Errorf("failed to read config file '%s': %w", configFilePath, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", configFilePath, err)
	}

	// YAML leaves absent maps nil; keep callers free of nil checks.
	if cfg.Clients == nil {
		cfg.Clients = make(map[string]Client)
	}
	if cfg.Backups.Path == "" {
		cfg.Backups.Path = GetDefaultConfig().Backups.Path
	}
	if cfg.Backups.Retention <= 0 {
		cfg.Backups.Retention = defaultRetention
	}

	return &cfg, nil
}

// SaveConfig saves the application configuration to the default path.
func SaveConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("cannot save a nil config")
	}
	configFilePath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("failed to determine config path for saving: %w", err)
	}

	configDir := filepath.Dir(configFilePath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory '%s': %w", configDir, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(configFilePath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file '%s': %w", configFilePath, err)
	}

	return nil
}

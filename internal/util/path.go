package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mcptoggle/internal/config"
)

// ConfigPathEnv overrides the server-list location when no --config flag is
// given.
const ConfigPathEnv = "MCPTOGGLE_CONFIG"

// ExpandPath expands a leading tilde (~) to the user's home directory.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, path[1:]), nil
}

// ResolveServerListPath picks the document to operate on. Precedence: the
// explicit flag value, then the MCPTOGGLE_CONFIG environment variable, then
// the configured default client, then the first detected client.
func ResolveServerListPath(flagPath string, cfg *config.Config) (string, error) {
	if flagPath != "" {
		return ExpandPath(flagPath)
	}
	if env := os.Getenv(ConfigPathEnv); env != "" {
		return ExpandPath(env)
	}
	if cfg != nil && cfg.DefaultClient != "" {
		client, ok := cfg.Clients[cfg.DefaultClient]
		if !ok || client.ConfigPath == "" {
			return "", fmt.Errorf("default client %q has no config_path in config.yaml", cfg.DefaultClient)
		}
		return ExpandPath(client.ConfigPath)
	}
	detected, err := DetectClients()
	if err != nil {
		return "", err
	}
	if len(detected) == 0 {
		return "", errors.New("no MCP client configuration found; pass --config or set " + ConfigPathEnv)
	}
	return detected[0].ConfigPath, nil
}

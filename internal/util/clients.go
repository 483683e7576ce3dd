package util

import (
	"os"
	"path/filepath"
	"runtime"
)

// KnownClient describes one MCP-capable application and where it keeps its
// server list.
type KnownClient struct {
	Name       string
	ConfigPath string
}

// candidate is one probe location for a known client.
type candidate struct {
	name string
	dir  string
	file string
}

// DetectClients probes the known MCP clients for this OS and returns the ones
// present, in a fixed precedence order (clients whose config this tool edits
// most reliably come first). A client counts as present when its config file
// exists, or when its config directory exists but the file has not been
// written yet.
func DetectClients() ([]KnownClient, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	var candidates []candidate
	switch runtime.GOOS {
	case "darwin":
		candidates = []candidate{
			{"claude-desktop", filepath.Join(homeDir, "Library", "Application Support", "Claude"), "claude_desktop_config.json"},
			{"cursor", filepath.Join(homeDir, ".cursor"), "mcp.json"},
			{"windsurf", filepath.Join(homeDir, ".codeium", "windsurf"), "mcp_config.json"},
			{"vscode", filepath.Join(homeDir, "Library", "Application Support", "Code", "User"), "mcp.json"},
		}
	case "windows":
		appData := os.Getenv("APPDATA")
		userProfile := os.Getenv("USERPROFILE")
		candidates = []candidate{
			{"claude-desktop", filepath.Join(appData, "Claude"), "claude_desktop_config.json"},
			{"cursor", filepath.Join(userProfile, ".cursor"), "mcp.json"},
			{"windsurf", filepath.Join(userProfile, ".codeium", "windsurf"), "mcp_config.json"},
			{"vscode", filepath.Join(appData, "Code", "User"), "mcp.json"},
		}
	default: // linux and friends
		candidates = []candidate{
			{"claude-desktop", filepath.Join(homeDir, ".config", "Claude"), "claude_desktop_config.json"},
			{"cursor", filepath.Join(homeDir, ".cursor"), "mcp.json"},
			{"windsurf", filepath.Join(homeDir, ".codeium", "windsurf"), "mcp_config.json"},
			{"vscode", filepath.Join(homeDir, ".config", "Code", "User"), "mcp.json"},
		}
	}

	var clients []KnownClient
	for _, c := range candidates {
		configPath := filepath.Join(c.dir, c.file)
		if _, err := os.Stat(configPath); err == nil {
			clients = append(clients, KnownClient{Name: c.name, ConfigPath: configPath})
			continue
		}
		// First-time setups: the directory exists before the config file does.
		if info, err := os.Stat(c.dir); err == nil && info.IsDir() {
			clients = append(clients, KnownClient{Name: c.name, ConfigPath: configPath})
		}
	}
	return clients, nil
}

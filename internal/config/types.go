package config

// Config represents the structure of config.yaml.
type Config struct {
	Version       int               `yaml:"version"`
	DefaultClient string            `yaml:"default_client,omitempty"`
	Clients       map[string]Client `yaml:"clients"`
	Backups       BackupConfig      `yaml:"backups"`
}

// Client points at one application's server-list file.
type Client struct {
	ConfigPath string `yaml:"config_path"`
}

// BackupConfig defines where server-list backups go and how many to keep per
// document.
type BackupConfig struct {
	Path      string `yaml:"path"`
	Retention int    `yaml:"retention"`
}

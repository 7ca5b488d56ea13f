package appconfig

import (
	"os"
	"path/filepath"
)

// Config is the top-level application configuration.
type Config struct {
	ConfigVersion int             `mapstructure:"config_version" yaml:"config_version"`
	CloneRoot     string          `mapstructure:"clone_root" yaml:"clone_root"`
	Accounts      []AccountConfig `mapstructure:"accounts" yaml:"accounts"`
}

// CurrentConfigVersion marks the supported config version.
const CurrentConfigVersion = 1

// AccountConfig describes one authenticated remote and the repositories it offers.
// Repositories are owner/name references relative to Host.
type AccountConfig struct {
	Host         string   `mapstructure:"host" yaml:"host"`
	Repositories []string `mapstructure:"repositories" yaml:"repositories"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ConfigVersion: CurrentConfigVersion,
		CloneRoot:     filepath.Join(home, "source", "repos"),
		Accounts: []AccountConfig{
			{Host: "https://github.com", Repositories: []string{}},
		},
	}, nil
}

// DefaultConfigPath returns the standard config path.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".repoclone", "config.yaml"), nil
}

package config

import (
	"os"
	"path/filepath"
)

// DefaultConfigPath is the config file location used when PROJTREE_CONFIG
// is unset: ~/.config/projtree/projects.json.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "projtree", "projects.json")
}

// ConfigPath returns the config file path from the PROJTREE_CONFIG env
// var, falling back to DefaultConfigPath.
func ConfigPath() string {
	if env := os.Getenv("PROJTREE_CONFIG"); env != "" {
		return env
	}
	return DefaultConfigPath()
}

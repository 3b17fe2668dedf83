// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// DefaultDictDir returns the default directory for training dictionaries.
func DefaultDictDir() string {
	return filepath.Join(XDGConfigHome(), "stenodactylus")
}

// DefaultDictPath returns the default word dictionary path.
func DefaultDictPath() string {
	return filepath.Join(DefaultDictDir(), "training.txt")
}

// DefaultPhrasePath returns the default phrase file path.
func DefaultPhrasePath() string {
	return filepath.Join(DefaultDictDir(), "training_phrases.txt")
}

// DefaultPhrasingPath returns the default phrasing dictionary path.
func DefaultPhrasingPath() string {
	return filepath.Join(DefaultDictDir(), "training_phrasing.txt")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), "stenodactylus", "stenodactylus.db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), "stenodactylus", "config.toml")
}

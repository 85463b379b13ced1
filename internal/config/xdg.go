// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "wordle-analysis"

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

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultDataDir returns the directory holding the word list files.
func DefaultDataDir() string {
	return filepath.Join(XDGDataHome(), appDir)
}

// AnswersPath returns the pipe-delimited Wordle answers file path.
func AnswersPath(dataDir string) string {
	return filepath.Join(dataDir, "wordle.txt")
}

// CorpusPath returns the newline-delimited English corpus file path.
func CorpusPath(dataDir string) string {
	return filepath.Join(dataDir, "five_letter_words.txt")
}

// DBPath returns the path for the SQLite run history.
func DBPath(dataDir string) string {
	return filepath.Join(dataDir, "runs.db")
}

// WheelCacheDir returns the cache directory for wordfreq wheels.
func WheelCacheDir(dataDir string) string {
	return filepath.Join(dataDir, "wordfreq")
}

package config

import (
	"os"
	"path/filepath"
)

const appName = "tukai"

// xdgDir returns $env, or the fallback joined under the home directory.
func xdgDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
func XDGConfigHome() string { return xdgDir("XDG_CONFIG_HOME", ".config") }

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
func XDGDataHome() string { return xdgDir("XDG_DATA_HOME", ".local", "share") }

// XDGStateHome returns $XDG_STATE_HOME or ~/.local/state.
func XDGStateHome() string { return xdgDir("XDG_STATE_HOME", ".local", "state") }

// DefaultConfigPath is the TOML config file.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultWordListDir is scanned for user <lang>.txt lists.
func DefaultWordListDir() string {
	return filepath.Join(XDGConfigHome(), appName, "wordlists")
}

// DefaultRecordPath is the persisted history and settings blob.
func DefaultRecordPath() string {
	return filepath.Join(XDGDataHome(), appName, "tukai.bin")
}

// DefaultExportPath is where `tukai export` writes its SQLite database.
func DefaultExportPath() string {
	return filepath.Join(XDGDataHome(), appName, "history.db")
}

// DefaultDebugLogPath receives diagnostics when debugging is enabled.
func DefaultDebugLogPath() string {
	return filepath.Join(XDGStateHome(), appName, "debug.log")
}

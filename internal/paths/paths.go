// Package paths provides directory paths for dryrun.
//
// Layout:
//   - Config (config.yaml, credentials.json): ~/.config/dryrun
//   - Data (logs, exported flowcharts): ~/.local/share/dryrun
//
// On Windows both live under %LOCALAPPDATA%\dryrun.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigDir returns the config directory for dryrun.
//
// Unix (macOS, Linux): ~/.config/dryrun
// Windows: %LOCALAPPDATA%\dryrun
//
// This directory stores config.yaml and credentials.json.
func ConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), "dryrun")
	}
	// Unix (macOS, Linux, etc.) - XDG compliant
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "dryrun")
}

// DataDir returns the data directory for dryrun.
//
// Unix (macOS, Linux): ~/.local/share/dryrun
// Windows: %LOCALAPPDATA%\dryrun
//
// This directory stores log files and saved lab transcripts.
func DataDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(localAppData(), "dryrun")
	}
	// Unix (macOS, Linux, etc.) - XDG compliant
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "dryrun")
}

// ConfigFile returns the path to the main config file.
// Location: ~/.config/dryrun/config.yaml (Unix) or %LOCALAPPDATA%\dryrun\config.yaml (Windows)
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// LogsDir returns the directory for log files.
// Location: ~/.local/share/dryrun/logs (Unix) or %LOCALAPPDATA%\dryrun\logs (Windows)
func LogsDir() string {
	return filepath.Join(DataDir(), "logs")
}

// LogFile returns the path to the main log file.
func LogFile() string {
	return filepath.Join(LogsDir(), "dryrun.log")
}

func localAppData() string {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		home, _ := os.UserHomeDir()
		localAppData = filepath.Join(home, "AppData", "Local")
	}
	return localAppData
}

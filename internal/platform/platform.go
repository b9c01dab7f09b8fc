// Package platform wraps the OS-specific pieces: data directory, idle time,
// sound playback and the single-instance guard.
package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

var (
	// ErrIdleUnsupported indicates idle time cannot be read on this system.
	ErrIdleUnsupported = errors.New("idle detection unsupported")
	// ErrSoundUnsupported indicates no sound backend was found.
	ErrSoundUnsupported = errors.New("sound playback unsupported")
)

// DataDir returns the per-user directory for appName, creating nothing.
// It prefers os.UserConfigDir and falls back to the conventional location
// under the home directory.
func DataDir(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return filepath.Join(configDir, appName), nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}
	return filepath.Join(fallbackConfigDir(runtime.GOOS, homeDir), appName), nil
}

func fallbackConfigDir(goos, homeDir string) string {
	switch goos {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support")
	case "windows":
		return filepath.Join(homeDir, "AppData", "Roaming")
	default:
		return filepath.Join(homeDir, ".config")
	}
}

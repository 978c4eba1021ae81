// Package config provides the global configuration directory for hallmark.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the hallmark configuration directory.
//
// Resolution:
//   - $HALLMARK_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/hallmark if set (respects XDG on any platform)
//   - %AppData%/hallmark on Windows
//   - ~/.config/hallmark on macOS and Linux
func Dir() string {
	if dir := os.Getenv("HALLMARK_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hallmark")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "hallmark")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hallmark")
}

package common

import (
	"os"
	"path/filepath"
)

// AppDir is ~/.morselight, shared by the config and log files.
// MORSELIGHT_HOME overrides it.
func AppDir() string {
	if dir := os.Getenv("MORSELIGHT_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".morselight"
	}
	return filepath.Join(home, ".morselight")
}

// LogPath returns the path of the session log file.
func LogPath() string {
	return filepath.Join(AppDir(), "morselight.log")
}

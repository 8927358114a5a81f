// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// DirName is the name of the runner directory under the user config dir.
	DirName = "claw-runner"
)

// File names
const (
	ConfigFileName = "config.json"
	RunnerFileName = "runner.yaml"
)

// Dir returns the path to the runner config directory
// ($XDG_CONFIG_HOME/claw-runner, usually ~/.config/claw-runner).
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, DirName), nil
}

// File returns the path to config.json.
func File() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// RunnerFile returns the path to runner.yaml.
func RunnerFile() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, RunnerFileName), nil
}

// EnsureDir creates the runner config directory if it doesn't exist.
func EnsureDir() error {
	dir, err := Dir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

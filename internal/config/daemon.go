package config

import (
	"os"
	"syscall"

	"github.com/openclaw/claw-runner/internal/models"
)

// LoadRunnerInfo loads the provider process info from runner.yaml.
// Returns nil if the file doesn't exist.
func LoadRunnerInfo() (*models.RunnerInfo, error) {
	path, err := RunnerFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.RunnerInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveRunnerInfo saves the provider process info to runner.yaml.
func SaveRunnerInfo(info *models.RunnerInfo) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	path, err := RunnerFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveRunnerInfo removes the runner.yaml file.
func RemoveRunnerInfo() error {
	path, err := RunnerFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsRunnerRunning checks if the provider process is still running.
// Returns true if runner.yaml exists and the PID is alive.
func IsRunnerRunning() (bool, *models.RunnerInfo, error) {
	info, err := LoadRunnerInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		return false, info, nil
	}

	// Signal 0 probes for existence without delivering anything.
	if err := process.Signal(syscall.Signal(0)); err != nil {
		_ = RemoveRunnerInfo()
		return false, info, nil
	}

	return true, info, nil
}

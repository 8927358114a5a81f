package models

import "time"

// RunnerInfo describes a running provider process.
// This corresponds to ~/.config/claw-runner/runner.yaml.
type RunnerInfo struct {
	Version      int       `yaml:"version"`
	BuildVersion string    `yaml:"build_version"`
	BusName      string    `yaml:"bus_name"`
	ObjectPath   string    `yaml:"object_path"`
	PID          int       `yaml:"pid"`
	Tray         bool      `yaml:"tray"`
	StartedAt    time.Time `yaml:"started_at"`
}

// NewRunnerInfo creates runner info with current values.
func NewRunnerInfo(buildVersion, busName, objectPath string, pid int, tray bool) *RunnerInfo {
	return &RunnerInfo{
		Version:      1,
		BuildVersion: buildVersion,
		BusName:      busName,
		ObjectPath:   objectPath,
		PID:          pid,
		Tray:         tray,
		StartedAt:    time.Now().UTC(),
	}
}

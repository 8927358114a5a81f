// Package tray implements the optional system tray icon listing the runner's
// actions.
package tray

import "github.com/openclaw/claw-runner/internal/models"

// ActionSource provides the actions shown in the tray and runs them.
type ActionSource interface {
	MenuActions() []models.Action
	Activate(id string)
	Trigger() string
}

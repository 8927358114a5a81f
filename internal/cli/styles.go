package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/openclaw/claw-runner/internal/models"
)

// Adaptive colors matching the picker palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
	styleCommand = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
)

// State badge styles for status fields.
var (
	badgeOK      = lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	badgeDown    = lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	badgeUnknown = lipgloss.NewStyle().Foreground(colorYellow)
)

func renderState(state string) string {
	switch state {
	case models.StateOK:
		return badgeOK.Render(state)
	case models.StateDown:
		return badgeDown.Render(state)
	case "":
		return badgeUnknown.Render("?")
	default:
		return badgeUnknown.Render(state)
	}
}

// label renders a fixed-width "Label:" column.
func label(s string) string {
	return styleLabel.Render(padRight(s+":", 12))
}

func padRight(s string, n int) string {
	for len(s) < n {
		s += " "
	}
	return s
}

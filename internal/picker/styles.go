package picker

import "github.com/charmbracelet/lipgloss"

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorOrange = lipgloss.AdaptiveColor{Light: "166", Dark: "208"}
)

var (
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorOrange)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorWhite)

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"})

	subtextStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	keyStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	hintStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// Package picker is a terminal launcher: a query box whose action list narrows
// as you type, the same way the desktop launcher does.
package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclaw/claw-runner/internal/models"
)

// MatchFunc returns the actions for a query.
type MatchFunc func(query string) []models.Action

// Model is the bubbletea model of the picker.
type Model struct {
	input   textinput.Model
	match   MatchFunc
	actions []models.Action
	cursor  int

	chosen   *models.Action
	quitting bool
}

// New creates a picker with an initial query.
func New(match MatchFunc, query string) Model {
	ti := textinput.New()
	ti.Placeholder = "status, logs, gateway stop…"
	ti.Prompt = promptStyle.Render("claw › ")
	ti.CharLimit = 128
	ti.SetValue(query)
	ti.Focus()

	m := Model{input: ti, match: match}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Cancel):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Run):
			if a, ok := m.Selected(); ok {
				m.chosen = &a
			}
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.move(-1)
			return m, nil
		case key.Matches(msg, keys.Down):
			m.move(1)
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.refresh()
	}
	return m, cmd
}

func (m *Model) refresh() {
	m.actions = m.match(m.input.Value())
	if m.cursor >= len(m.actions) {
		m.cursor = len(m.actions) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) move(delta int) {
	if len(m.actions) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.actions)) % len(m.actions)
}

// Selected returns the action under the cursor.
func (m Model) Selected() (models.Action, bool) {
	if m.cursor < 0 || m.cursor >= len(m.actions) {
		return models.Action{}, false
	}
	return m.actions[m.cursor], true
}

// Chosen returns the action confirmed with Enter, if any.
func (m Model) Chosen() (models.Action, bool) {
	if m.chosen == nil {
		return models.Action{}, false
	}
	return *m.chosen, true
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if len(m.actions) == 0 {
		b.WriteString(subtextStyle.Render("  no actions"))
		b.WriteString("\n")
	}
	for i, a := range m.actions {
		line := fmt.Sprintf("  %s", a.Label)
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("› " + a.Label))
		} else {
			b.WriteString(labelStyle.Render(line))
		}
		if a.Subtext != "" {
			b.WriteString("  ")
			b.WriteString(subtextStyle.Render(a.Subtext))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(keyStyle.Render("↑/↓") + hintStyle.Render(" select  "))
	b.WriteString(keyStyle.Render("Enter") + hintStyle.Render(" run  "))
	b.WriteString(keyStyle.Render("Esc") + hintStyle.Render(" cancel"))
	b.WriteString("\n")
	return b.String()
}

// Run shows the picker and returns the chosen action. ok is false when the
// user cancelled.
func Run(match MatchFunc, query string) (models.Action, bool, error) {
	final, err := tea.NewProgram(New(match, query)).Run()
	if err != nil {
		return models.Action{}, false, err
	}
	a, ok := final.(Model).Chosen()
	return a, ok, nil
}

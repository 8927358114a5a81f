package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/openclaw/claw-runner/internal/dispatch"
	"github.com/openclaw/claw-runner/internal/models"
)

func newTestModel(query string) Model {
	d := dispatch.New(models.NewConfig())
	return New(d.Matches, query)
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func typed(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_InitialQuery(t *testing.T) {
	m := newTestModel("")
	if len(m.actions) != len(dispatch.TopLevel) {
		t.Fatalf("got %d actions, want top-level %d", len(m.actions), len(dispatch.TopLevel))
	}
	a, ok := m.Selected()
	if !ok || a.ID != dispatch.IDOpenDashboard {
		t.Errorf("Selected() = %q, %v", a.ID, ok)
	}
}

func TestPicker_TypingNarrows(t *testing.T) {
	m := send(newTestModel(""), typed("gw stop"))

	if len(m.actions) != 1 || m.actions[0].ID != dispatch.IDGatewayStop {
		t.Errorf("actions after typing = %v", m.actions)
	}
}

func TestPicker_NavigateAndRun(t *testing.T) {
	m := send(newTestModel("claw gateway"),
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown}, // wraps
		tea.KeyMsg{Type: tea.KeyUp},
		tea.KeyMsg{Type: tea.KeyEnter},
	)

	a, ok := m.Chosen()
	if !ok {
		t.Fatal("nothing chosen")
	}
	if a.ID != dispatch.IDGatewayRestart {
		t.Errorf("chosen %q, want %q", a.ID, dispatch.IDGatewayRestart)
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestPicker_Cancel(t *testing.T) {
	m := send(newTestModel("status"), tea.KeyMsg{Type: tea.KeyEsc})
	if _, ok := m.Chosen(); ok {
		t.Error("cancel should not choose")
	}
}

func TestPicker_CursorClampedOnNarrowing(t *testing.T) {
	m := send(newTestModel(""),
		tea.KeyMsg{Type: tea.KeyUp}, // last of five
		typed("logs"),
	)
	if m.cursor >= len(m.actions) {
		t.Errorf("cursor %d out of range (%d actions)", m.cursor, len(m.actions))
	}
}

func TestPicker_View(t *testing.T) {
	v := newTestModel("claw status").View()
	for _, want := range []string{"Status (concise)", "Status (verbose)", "Enter"} {
		if !strings.Contains(v, want) {
			t.Errorf("view missing %q:\n%s", want, v)
		}
	}

	empty := New(func(string) []models.Action { return nil }, "")
	if !strings.Contains(empty.View(), "no actions") {
		t.Error("empty view should say so")
	}
	if _, ok := empty.Selected(); ok {
		t.Error("Selected on empty list")
	}
}

package terminal

import (
	"errors"
	"os/exec"
	"reflect"
	"slices"
	"strings"
	"testing"

	shellquote "github.com/kballard/go-shellquote"
)

func fakeResolver(env map[string]string, installed ...string) *Resolver {
	onPath := map[string]bool{}
	for _, n := range installed {
		onPath[n] = true
	}
	return &Resolver{
		Getenv: func(k string) string { return env[k] },
		LookPath: func(name string) (string, error) {
			if onPath[name] {
				return "/usr/bin/" + name, nil
			}
			return "", exec.ErrNotFound
		},
	}
}

func TestResolvePrecedence(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		env        map[string]string
		installed  []string
		expected   string
		wantErr    error
	}{
		{
			name:       "Config wins",
			configured: "  foot  ",
			env:        map[string]string{"TERMINAL": "kitty"},
			installed:  []string{"xterm"},
			expected:   "foot",
		},
		{
			name:      "Environment next",
			env:       map[string]string{"TERMINAL": "wezterm start"},
			installed: []string{"xterm"},
			expected:  "wezterm start",
		},
		{
			name:      "Blank environment ignored",
			env:       map[string]string{"TERMINAL": "   "},
			installed: []string{"xterm"},
			expected:  "xterm",
		},
		{
			name:      "Autodetect in candidate order",
			installed: []string{"xterm", "konsole", "alacritty"},
			expected:  "alacritty",
		},
		{
			name:    "Nothing available",
			wantErr: ErrNoTerminal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fakeResolver(tt.env, tt.installed...)
			got, err := r.Resolve(tt.configured)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if got != tt.expected {
				t.Errorf("Resolve() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCommandAppendsArguments(t *testing.T) {
	inner := []string{"journalctl", "--user", "-u", "clawdbot-gateway.service", "-f"}

	tests := []struct {
		terminal string
		expected []string
	}{
		{"kitty", append([]string{"kitty", "--hold"}, inner...)},
		{"konsole", append([]string{"konsole", "--hold", "-e"}, inner...)},
		{"/usr/bin/xterm", append([]string{"/usr/bin/xterm", "-hold", "-e"}, inner...)},
		{"gnome-terminal", append([]string{"gnome-terminal", "--", "sh", "-c", keepOpen[2], "sh"}, inner...)},
		{"x-terminal-emulator", append([]string{"x-terminal-emulator", "-e", "sh", "-c", keepOpen[2], "sh"}, inner...)},
		{"wezterm", append([]string{"wezterm", "-e", "sh", "-c", keepOpen[2], "sh"}, inner...)},
		{"alacritty --class claw", append([]string{"alacritty", "--class", "claw", "--hold", "-e"}, inner...)},
	}

	for _, tt := range tests {
		t.Run(tt.terminal, func(t *testing.T) {
			got, err := Command(tt.terminal, inner)
			if err != nil {
				t.Fatalf("Command() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Command() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCommandKeepsEveryCandidateOpen(t *testing.T) {
	inner := []string{"clawdbot", "status", "--verbose"}
	holdFlags := map[string]bool{"--hold": true, "-hold": true}

	for _, name := range append(Candidates, "kgx", "wezterm", "foot") {
		t.Run(name, func(t *testing.T) {
			got, err := Command(name, inner)
			if err != nil {
				t.Fatalf("Command() error = %v", err)
			}

			held := false
			for _, arg := range got {
				if holdFlags[arg] {
					held = true
				}
			}
			wrapped := slices.Contains(got, keepOpen[2])
			if held == wrapped {
				t.Errorf("Command(%q) = %q, want exactly one of hold flag or shell wrapper", name, got)
			}
			if !reflect.DeepEqual(got[len(got)-len(inner):], inner) {
				t.Errorf("Command(%q) = %q, inner must be passed as separate arguments", name, got)
			}
		})
	}
}

func TestKeepOpenScriptIsConstant(t *testing.T) {
	inner := []string{"echo", "$(touch /tmp/pwned)", "; rm -rf ~"}
	got, err := Command("x-terminal-emulator", inner)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if got[4] != `"$@"; echo; exec "${SHELL:-sh}" -l` {
		t.Errorf("script = %q", got[4])
	}
	if !reflect.DeepEqual(got[6:], inner) {
		t.Errorf("Command() = %q, inner must follow $0 verbatim", got)
	}
}

func TestCommandPlaceholderTemplate(t *testing.T) {
	got, err := Command("konsole --hold -e sh -lc {cmd}", []string{"echo", "hi"})
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}

	expected := []string{"konsole", "--hold", "-e", "sh", "-lc", "echo hi"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Command() = %q, want %q", got, expected)
	}
	for _, arg := range got {
		if strings.Contains(arg, Placeholder) {
			t.Errorf("placeholder left in argv: %q", got)
		}
	}
}

func TestCommandPlaceholderQuotesPayload(t *testing.T) {
	inner := []string{"journalctl", "--user", "-u", "my gateway.service", "-f"}
	got, err := Command("kitty --hold sh -lc {cmd}", inner)
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("Command() = %q, want 5 args", got)
	}

	// The shell must split the payload back into the original argv.
	back, err := shellquote.Split(got[4])
	if err != nil {
		t.Fatalf("payload %q does not parse: %v", got[4], err)
	}
	if !reflect.DeepEqual(back, inner) {
		t.Errorf("payload splits to %q, want %q", back, inner)
	}
}

func TestCommandPlaceholderInsideLargerArgument(t *testing.T) {
	got, err := Command(`foot sh -c "cd ~ && {cmd}"`, []string{"clawdbot", "status"})
	if err != nil {
		t.Fatalf("Command() error = %v", err)
	}
	expected := []string{"foot", "sh", "-c", "cd ~ && clawdbot status"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Command() = %q, want %q", got, expected)
	}
}

func TestCommandErrors(t *testing.T) {
	if _, err := Command("", []string{"true"}); !errors.Is(err, ErrNoTerminal) {
		t.Errorf("empty terminal: error = %v, want ErrNoTerminal", err)
	}
	if _, err := Command("kitty 'unterminated", []string{"true"}); err == nil {
		t.Error("unbalanced quote: expected error")
	}
	if _, err := Command("kitty", nil); err == nil {
		t.Error("empty inner command: expected error")
	}
}

func TestResolverArgv(t *testing.T) {
	r := fakeResolver(nil)
	if _, err := r.Argv("", []string{"true"}); !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("Argv() error = %v, want ErrNoTerminal", err)
	}

	r = fakeResolver(nil, "kitty")
	got, err := r.Argv("", []string{"true"})
	if err != nil {
		t.Fatalf("Argv() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"kitty", "--hold", "true"}) {
		t.Errorf("Argv() = %q", got)
	}
}

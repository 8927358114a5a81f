// Package terminal picks a terminal emulator and builds the argv that runs a
// command inside it.
package terminal

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

// ErrNoTerminal is returned when no terminal emulator can be resolved.
var ErrNoTerminal = errors.New("no terminal available")

// Placeholder marks where a configured terminal template takes the command.
const Placeholder = "{cmd}"

// EnvVar overrides auto-detection when config has no terminal.
const EnvVar = "TERMINAL"

// Candidates are probed on PATH in order when nothing is configured.
var Candidates = []string{
	"x-terminal-emulator", // Debian alternatives, respects the system default
	"kitty",
	"alacritty",
	"konsole",
	"gnome-terminal",
	"xterm",
}

// Resolver decides which terminal command to use.
type Resolver struct {
	Getenv   func(string) string
	LookPath func(string) (string, error)
}

// NewResolver creates a resolver reading the process environment and
// searching PATH with lookPath.
func NewResolver(lookPath func(string) (string, error)) *Resolver {
	return &Resolver{
		Getenv:   os.Getenv,
		LookPath: lookPath,
	}
}

// Resolve returns the terminal command string (possibly with arguments or a
// placeholder). Precedence: configured value, $TERMINAL, first candidate on PATH.
func (r *Resolver) Resolve(configured string) (string, error) {
	if v := strings.TrimSpace(configured); v != "" {
		return v, nil
	}

	if v := strings.TrimSpace(r.Getenv(EnvVar)); v != "" {
		return v, nil
	}

	for _, name := range Candidates {
		if _, err := r.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", ErrNoTerminal
}

// Argv resolves the terminal and builds the argv running inner in it.
func (r *Resolver) Argv(configured string, inner []string) ([]string, error) {
	term, err := r.Resolve(configured)
	if err != nil {
		return nil, err
	}
	return Command(term, inner)
}

// Command builds the argv that runs inner inside terminalCmd and keeps the
// window open after inner exits.
//
// A template containing Placeholder gets inner, shell-quoted into one string,
// substituted in place; the template is expected to hand that string to a
// shell (e.g. "konsole --hold -e sh -lc {cmd}"). This is the only place a
// command is turned into shell text. Otherwise inner is appended as separate
// arguments after the emulator's hold/exec flags. Emulators without a hold
// flag get inner wrapped in a small sh script that drops to a login shell.
func Command(terminalCmd string, inner []string) ([]string, error) {
	if len(inner) == 0 {
		return nil, errors.New("empty command")
	}

	term, err := shellquote.Split(terminalCmd)
	if err != nil {
		return nil, fmt.Errorf("parse terminal command %q: %w", terminalCmd, err)
	}
	if len(term) == 0 {
		return nil, ErrNoTerminal
	}

	if strings.Contains(terminalCmd, Placeholder) {
		return substitute(term, inner), nil
	}

	flags, held := holdArgs(term[0])
	argv := make([]string, 0, len(term)+len(flags)+len(keepOpen)+len(inner))
	argv = append(argv, term...)
	argv = append(argv, flags...)
	if !held {
		argv = append(argv, keepOpen...)
	}
	argv = append(argv, inner...)
	return argv, nil
}

// keepOpen runs its positional arguments and then a login shell, so the
// window survives the command. The script is constant; inner is passed as
// "$@" and never becomes shell text.
var keepOpen = []string{"sh", "-c", `"$@"; echo; exec "${SHELL:-sh}" -l`, "sh"}

func substitute(template, inner []string) []string {
	payload := shellquote.Join(inner...)
	argv := make([]string, len(template))
	for i, arg := range template {
		argv[i] = strings.ReplaceAll(arg, Placeholder, payload)
	}
	return argv
}

// holdArgs returns the flags that make an emulator run a command. held is
// false when the emulator has no flag keeping it open after the command exits.
func holdArgs(exe string) (flags []string, held bool) {
	switch filepath.Base(exe) {
	case "kitty", "foot":
		return []string{"--hold"}, true
	case "konsole", "alacritty":
		return []string{"--hold", "-e"}, true
	case "xterm", "uxterm":
		return []string{"-hold", "-e"}, true
	case "xfce4-terminal":
		return []string{"--hold", "-x"}, true
	case "gnome-terminal", "kgx", "ptyxis":
		return []string{"--"}, false
	default:
		// x-terminal-emulator and unknown emulators only promise -e.
		return []string{"-e"}, false
	}
}

// Package proc runs external commands. Every command is an argument list;
// nothing here goes through a shell.
package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
	"time"
)

// Exit codes reported for runs that did not produce one.
const (
	CodeTimeout     = 124
	CodeSpawnFailed = 127
)

// ErrCommandFailed marks a nonzero exit, a timeout or a failed spawn.
var ErrCommandFailed = errors.New("external command failed")

// Result is the outcome of a bounded run.
type Result struct {
	Argv     []string
	Code     int
	Stdout   string
	Stderr   string
	TimedOut bool
}

// OK reports a zero exit status.
func (r Result) OK() bool {
	return r.Code == 0 && !r.TimedOut
}

// Combined returns stdout followed by stderr.
func (r Result) Combined() string {
	switch {
	case r.Stderr == "":
		return r.Stdout
	case r.Stdout == "":
		return r.Stderr
	default:
		return r.Stdout + "\n" + r.Stderr
	}
}

// Message returns the most useful one-line description of a failure.
func (r Result) Message() string {
	if r.TimedOut {
		return "timed out"
	}
	if msg := strings.TrimSpace(r.Stderr); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(r.Stdout); msg != "" {
		return msg
	}
	return fmt.Sprintf("exit status %d", r.Code)
}

// Err returns nil on success, otherwise an error wrapping ErrCommandFailed.
func (r Result) Err() error {
	if r.OK() {
		return nil
	}
	name := ""
	if len(r.Argv) > 0 {
		name = r.Argv[0]
	}
	return fmt.Errorf("%w: %s: %s", ErrCommandFailed, name, r.Message())
}

// Execer spawns processes. Tests substitute a recording fake.
type Execer interface {
	// Run executes argv and waits at most timeout for it to finish.
	Run(ctx context.Context, timeout time.Duration, argv []string) Result
	// Start launches argv detached in its own session and does not wait.
	// A nil env inherits the current environment.
	Start(argv []string, env []string) error
	// LookPath searches PATH for an executable.
	LookPath(name string) (string, error)
}

// System is the Execer backed by os/exec.
type System struct{}

// Run implements Execer.
func (System) Run(ctx context.Context, timeout time.Duration, argv []string) Result {
	res := Result{Argv: argv}
	if len(argv) == 0 {
		res.Code = CodeSpawnFailed
		res.Stderr = "empty command"
		return res
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		res.Code = 0
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Code = CodeTimeout
		res.TimedOut = true
	case errors.As(err, &exitErr):
		res.Code = exitErr.ExitCode()
	default:
		res.Code = CodeSpawnFailed
		if res.Stderr == "" {
			res.Stderr = err.Error()
		}
	}
	return res
}

// Start implements Execer.
func (System) Start(argv []string, env []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("%w: empty command", ErrCommandFailed)
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = env
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	// New session: closing the launcher must not take the child with it.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCommandFailed, argv[0], err)
	}

	// Reap in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}

// LookPath implements Execer.
func (System) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

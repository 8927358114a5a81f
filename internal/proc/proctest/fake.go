// Package proctest provides a recording proc.Execer for tests.
package proctest

import (
	"context"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/openclaw/claw-runner/internal/proc"
)

// Started is one recorded Start call.
type Started struct {
	Argv []string
	Env  []string
}

// Fake records calls and answers Run from canned results.
type Fake struct {
	mu sync.Mutex

	// Results maps a space-joined argv to its result. Unmatched runs exit 1.
	Results map[string]proc.Result
	// Paths lists the executables LookPath can find, name -> path.
	Paths map[string]string
	// StartErr is returned from every Start call when set.
	StartErr error

	Runs     [][]string
	Timeouts []time.Duration
	Starts   []Started
}

// New creates an empty fake.
func New() *Fake {
	return &Fake{
		Results: map[string]proc.Result{},
		Paths:   map[string]string{},
	}
}

// OnRun registers the result for argv.
func (f *Fake) OnRun(res proc.Result, argv ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	res.Argv = argv
	f.Results[strings.Join(argv, " ")] = res
}

// Install makes name resolvable on the fake PATH.
func (f *Fake) Install(names ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range names {
		f.Paths[n] = "/usr/bin/" + n
	}
}

// Run implements proc.Execer.
func (f *Fake) Run(ctx context.Context, timeout time.Duration, argv []string) proc.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Runs = append(f.Runs, append([]string(nil), argv...))
	f.Timeouts = append(f.Timeouts, timeout)
	if res, ok := f.Results[strings.Join(argv, " ")]; ok {
		return res
	}
	return proc.Result{Argv: argv, Code: 1, Stderr: "unexpected command"}
}

// Start implements proc.Execer.
func (f *Fake) Start(argv []string, env []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StartErr != nil {
		return f.StartErr
	}
	f.Starts = append(f.Starts, Started{Argv: append([]string(nil), argv...), Env: env})
	return nil
}

// LookPath implements proc.Execer.
func (f *Fake) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.Paths[name]; ok {
		return p, nil
	}
	return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
}

// Spawned reports the total number of Run and Start calls.
func (f *Fake) Spawned() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Runs) + len(f.Starts)
}

// LastStart returns the most recent Start call.
func (f *Fake) LastStart() (Started, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Starts) == 0 {
		return Started{}, false
	}
	return f.Starts[len(f.Starts)-1], true
}

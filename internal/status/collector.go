package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openclaw/claw-runner/internal/models"
	"github.com/openclaw/claw-runner/internal/proc"
)

// VerboseFlag asks the CLI for the long status view.
const VerboseFlag = "--verbose"

// JSON invocations tried before falling back to plain text.
var jsonVariants = [][]string{
	{"status", "--json"},
	{"status", "--format", "json"},
}

// Collector runs the CLI status command and parses its output.
type Collector struct {
	Exec    proc.Execer
	Locator *Locator

	// JSONTimeout is generous: the CLI can take a while on a cold start.
	JSONTimeout  time.Duration
	TextTimeout  time.Duration
	ProbeTimeout time.Duration
}

// NewCollector creates a collector with the default timeouts.
func NewCollector(exec proc.Execer) *Collector {
	return &Collector{
		Exec:         exec,
		Locator:      NewLocator(exec.LookPath),
		JSONTimeout:  8 * time.Second,
		TextTimeout:  4 * time.Second,
		ProbeTimeout: 1500 * time.Millisecond,
	}
}

// Locate returns the CLI path or an error wrapping ErrCLINotFound.
func (c *Collector) Locate(cli string) (string, error) {
	bin := c.Locator.Locate(cli)
	if !bin.Found {
		return "", fmt.Errorf("%w: %s", ErrCLINotFound, bin.Configured)
	}
	return bin.Path, nil
}

// Collect runs the status command. JSON output is preferred; plain text is
// the fallback and is parsed field by field. A plain run that exits nonzero
// still counts when its output names at least one field. Only a missing CLI
// or a failing run with nothing recognizable is an error.
func (c *Collector) Collect(ctx context.Context, cli string) (*models.ParsedStatus, error) {
	path, err := c.Locate(cli)
	if err != nil {
		return nil, err
	}

	for _, args := range jsonVariants {
		res := c.Exec.Run(ctx, c.JSONTimeout, append([]string{path}, args...))
		if !res.OK() || strings.TrimSpace(res.Stdout) == "" {
			continue
		}
		if st, ok := ParseJSON(res.Stdout); ok {
			return st, nil
		}
	}

	res := c.Exec.Run(ctx, c.TextTimeout, []string{path, "status"})
	st := ParseText(res.Combined())
	if err := res.Err(); err != nil && len(st.Fields) == 0 {
		return nil, err
	}
	return st, nil
}

// CommandArgv returns the argv running the CLI with preferred arguments, or
// with fallback when a quick probe shows the CLI rejects preferred. With no
// fallback the probe is skipped.
func (c *Collector) CommandArgv(ctx context.Context, cli string, preferred, fallback []string) ([]string, error) {
	path, err := c.Locate(cli)
	if err != nil {
		return nil, err
	}

	argv := append([]string{path}, preferred...)
	if len(fallback) == 0 {
		return argv, nil
	}
	if c.Exec.Run(ctx, c.ProbeTimeout, argv).OK() {
		return argv, nil
	}
	return append([]string{path}, fallback...), nil
}

// Package invoke executes launcher actions: opening URLs, notifications,
// user service control and commands run inside a terminal.
package invoke

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/openclaw/claw-runner/internal/config"
	"github.com/openclaw/claw-runner/internal/models"
	"github.com/openclaw/claw-runner/internal/proc"
	"github.com/openclaw/claw-runner/internal/status"
	"github.com/openclaw/claw-runner/internal/terminal"
)

// ErrorLog receives failures reported by Execute. It stays on stderr when
// informational logging is silenced.
var ErrorLog = log.Default()

var serviceVerbs = map[string]bool{"start": true, "stop": true, "restart": true}

// Runner executes actions against a config snapshot.
type Runner struct {
	Exec      proc.Execer
	Notifier  Notifier
	Terminals *terminal.Resolver
	Status    *status.Collector
	Store     *config.Store
	Getenv    func(string) string

	ServiceTimeout time.Duration

	mu    sync.Mutex
	token string
}

// NewRunner creates a runner using exec for every subprocess.
func NewRunner(exec proc.Execer, notifier Notifier, store *config.Store) *Runner {
	return &Runner{
		Exec:           exec,
		Notifier:       notifier,
		Terminals:      terminal.NewResolver(exec.LookPath),
		Status:         status.NewCollector(exec),
		Store:          store,
		Getenv:         os.Getenv,
		ServiceTimeout: 8 * time.Second,
	}
}

// SetActivationToken stores the launcher's focus token for the next URL open.
func (r *Runner) SetActivationToken(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.token = strings.TrimSpace(token)
}

// ActivationToken returns the pending activation token, if any.
func (r *Runner) ActivationToken() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token
}

// Execute runs a and reports any failure through the notifier. It never
// panics; the returned error has already been shown to the user.
func (r *Runner) Execute(ctx context.Context, cfg *models.Config, a models.Action) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("action %s panicked: %v", a.ID, p)
			r.report(cfg, a, err)
		}
	}()

	r.logf("run %s (%s)", a.ID, a.Kind)
	if err = r.Run(ctx, cfg, a); err != nil {
		r.report(cfg, a, err)
	}
	return err
}

// Run executes a and returns its error without notifying.
func (r *Runner) Run(ctx context.Context, cfg *models.Config, a models.Action) error {
	inv := a.Invocation

	switch a.Kind {
	case models.KindOpenURL:
		return r.OpenURL(inv.URL)

	case models.KindNotification:
		if !inv.StatusSummary {
			return r.notify(inv.Message)
		}
		st, err := r.Status.Collect(ctx, cfg.CLI)
		if err != nil {
			return err
		}
		return r.notify(st.Summary())

	case models.KindServiceControl:
		msg, err := r.ServiceControl(ctx, inv.Verb, inv.Unit)
		if err != nil {
			return err
		}
		return r.notify(msg)

	case models.KindFollowLog:
		return r.FollowLog(cfg, inv.Unit)

	case models.KindTerminalCommand:
		argv, err := r.Status.CommandArgv(ctx, cfg.CLI, inv.CLIArgs, inv.FallbackArgs)
		if err != nil {
			return err
		}
		return r.InTerminal(cfg, argv)

	case models.KindOpenConfig:
		return r.OpenConfig(cfg)

	default:
		return fmt.Errorf("unknown action kind %q", a.Kind)
	}
}

// ServiceControl runs `systemctl --user <verb> <unit>` and waits for it.
func (r *Runner) ServiceControl(ctx context.Context, verb, unit string) (string, error) {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return "", errors.New("no unit configured")
	}
	if !serviceVerbs[verb] {
		return "", fmt.Errorf("unsupported service verb %q", verb)
	}

	res := r.Exec.Run(ctx, r.ServiceTimeout, []string{"systemctl", "--user", verb, unit})
	r.logf("systemctl %s %s: code=%d", verb, unit, res.Code)
	if err := res.Err(); err != nil {
		return "", fmt.Errorf("%s %s: %w", verb, unit, err)
	}
	return fmt.Sprintf("%s %s: OK", verb, unit), nil
}

// FollowLog opens `journalctl --user -u <unit> -f` in a terminal.
func (r *Runner) FollowLog(cfg *models.Config, unit string) error {
	unit = strings.TrimSpace(unit)
	if unit == "" {
		return errors.New("no unit configured")
	}
	return r.InTerminal(cfg, []string{"journalctl", "--user", "-u", unit, "-f"})
}

// InTerminal launches inner in the resolved terminal and does not wait.
func (r *Runner) InTerminal(cfg *models.Config, inner []string) error {
	argv, err := r.Terminals.Argv(cfg.Terminal, inner)
	if err != nil {
		return err
	}
	if err := r.Exec.Start(argv, nil); err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	r.logf("terminal: %s", strings.Join(argv, " "))
	return nil
}

// OpenConfig creates the config file with defaults when missing and opens
// it in $VISUAL/$EDITOR inside a terminal, or with the default file handler.
// The store is reloaded so a freshly created or externally edited file takes
// effect right away.
func (r *Runner) OpenConfig(cfg *models.Config) error {
	path := r.Store.Path()
	created, err := config.EnsureFile(path)
	if err != nil {
		return err
	}
	if created {
		r.logf("created %s", path)
	}
	if err := r.Store.Reload(); err != nil {
		r.logf("reload config: %v", err)
	}

	opened := false
	if editor := r.editor(); len(editor) > 0 {
		inner := append(append([]string(nil), editor...), path)
		if err := r.InTerminal(cfg, inner); err == nil {
			opened = true
		} else {
			r.logf("editor in terminal: %v", err)
		}
	}
	if !opened {
		if err := r.OpenURL(FileURL(path)); err != nil {
			return err
		}
	}
	return r.notify("Config: " + path)
}

func (r *Runner) editor() []string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(r.Getenv(key)); v != "" {
			return strings.Fields(v)
		}
	}
	return nil
}

func (r *Runner) notify(message string) error {
	if r.Notifier == nil {
		return nil
	}
	if err := r.Notifier.Notify(message); err != nil {
		// A missing notification daemon must not fail the action.
		r.logf("notify failed: %v (message: %s)", err, message)
	}
	return nil
}

func (r *Runner) report(cfg *models.Config, a models.Action, err error) {
	ErrorLog.Printf("[invoke] %s failed: %v", a.ID, err)
	_ = r.notify(userMessage(cfg, r.configPath(), err))
}

func (r *Runner) configPath() string {
	if r.Store == nil {
		return "config.json"
	}
	return r.Store.Path()
}

// userMessage turns an action error into notification text.
func userMessage(cfg *models.Config, configPath string, err error) string {
	switch {
	case errors.Is(err, terminal.ErrNoTerminal):
		return fmt.Sprintf("No terminal emulator found. Set 'terminal' in %s", configPath)
	case errors.Is(err, status.ErrCLINotFound):
		return fmt.Sprintf("CLI not found (%s). Set 'cli' in %s", cfg.CLI, configPath)
	case errors.Is(err, ErrUnsupportedScheme):
		return fmt.Sprintf("Refusing to open URL: %v", err)
	default:
		return fmt.Sprintf("claw-runner error: %v", err)
	}
}

func (r *Runner) logf(format string, args ...interface{}) {
	log.Printf("[invoke] "+format, args...)
}

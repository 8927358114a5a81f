// Package krunner exposes the action dispatcher to KDE's launcher over the
// org.kde.krunner1 D-Bus interface.
package krunner

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/openclaw/claw-runner/internal/config"
	"github.com/openclaw/claw-runner/internal/dispatch"
	"github.com/openclaw/claw-runner/internal/invoke"
	"github.com/openclaw/claw-runner/internal/models"
)

// Secondary action ids offered next to a match.
const (
	ActionOpen     = "open"
	ActionNotify   = "notify"
	ActionTerminal = "terminal"
	ActionStart    = "start"
	ActionStop     = "stop"
	ActionRestart  = "restart"
)

// SecondaryAction is a button KRunner shows on a match.
type SecondaryAction struct {
	ID   string
	Text string
	Icon string
}

// SecondaryActions is the full list announced to the host once.
var SecondaryActions = []SecondaryAction{
	{ActionOpen, "Open", "applications-internet"},
	{ActionNotify, "Notify", "dialog-information"},
	{ActionTerminal, "Open in terminal", "utilities-terminal"},
	{ActionStart, "Start", "media-playback-start"},
	{ActionStop, "Stop", "media-playback-stop"},
	{ActionRestart, "Restart", "view-refresh"},
}

// Provider answers match and run requests.
type Provider struct {
	store  *config.Store
	runner *invoke.Runner

	// RunTimeout bounds one action, including status collection.
	RunTimeout time.Duration

	mu      sync.Mutex
	cfg     *models.Config
	disp    *dispatch.Dispatcher
	running sync.WaitGroup
}

// NewProvider creates a provider reading config snapshots from store.
func NewProvider(store *config.Store, runner *invoke.Runner) *Provider {
	return &Provider{
		store:      store,
		runner:     runner,
		RunTimeout: 30 * time.Second,
	}
}

// snapshot returns the current config and a dispatcher built from it. The
// dispatcher is rebuilt only when the store publishes a new snapshot.
func (p *Provider) snapshot() (*models.Config, *dispatch.Dispatcher) {
	cfg := p.store.Current()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disp == nil || p.cfg != cfg {
		p.cfg = cfg
		p.disp = dispatch.New(cfg)
	}
	return p.cfg, p.disp
}

// Match returns the actions for a launcher query. Queries not starting with
// the trigger word get nothing. It never fails; internal errors yield an
// empty list.
func (p *Provider) Match(query string) (actions []models.Action) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[krunner] match %q panicked: %v", query, r)
			actions = nil
		}
	}()

	_, disp := p.snapshot()
	if !dispatch.HasTrigger(query, disp.Trigger()) {
		return nil
	}
	return disp.Matches(query)
}

// Resolve maps a match id and an optional secondary action id to the action
// to execute.
func (p *Provider) Resolve(matchID, actionID string) (*models.Config, models.Action, error) {
	cfg, disp := p.snapshot()

	a, ok := disp.Lookup(matchID)
	if !ok {
		return cfg, models.Action{}, fmt.Errorf("unknown match %q", matchID)
	}

	switch actionID {
	case ActionTerminal:
		if a.ID == dispatch.IDStatusConcise {
			a, _ = disp.Lookup(dispatch.IDStatusVerbose)
		}
	case ActionStart, ActionStop, ActionRestart:
		if a.Kind == models.KindServiceControl {
			if alt, ok := disp.Lookup(a.Group + "-" + actionID); ok {
				a = alt
			}
		}
	}
	return cfg, a, nil
}

// Run executes the resolved action in the background and returns at once, so
// the bus is never blocked on a slow subprocess.
func (p *Provider) Run(matchID, actionID string) error {
	cfg, a, err := p.Resolve(matchID, actionID)
	if err != nil {
		log.Printf("[krunner] %v", err)
		return err
	}

	p.running.Add(1)
	go func() {
		defer p.running.Done()
		ctx, cancel := context.WithTimeout(context.Background(), p.RunTimeout)
		defer cancel()
		_ = p.runner.Execute(ctx, cfg, a)
	}()
	return nil
}

// Wait blocks until every action started by Run has finished.
func (p *Provider) Wait() {
	p.running.Wait()
}

// SetActivationToken forwards the host's focus token to URL openers.
func (p *Provider) SetActivationToken(token string) {
	p.runner.SetActivationToken(token)
}

// Teardown is called when the launcher closes. The pending token is stale.
func (p *Provider) Teardown() {
	p.runner.SetActivationToken("")
}

// Trigger returns the current trigger word.
func (p *Provider) Trigger() string {
	_, disp := p.snapshot()
	return disp.Trigger()
}

// MenuActions lists every action, for front-ends without a query box.
func (p *Provider) MenuActions() []models.Action {
	_, disp := p.snapshot()
	return disp.All()
}

// Activate runs the action with id as if chosen from the launcher.
func (p *Provider) Activate(id string) {
	_ = p.Run(id, "")
}

// secondaryFor lists the secondary action ids shown on a.
func secondaryFor(a models.Action) []string {
	switch a.Kind {
	case models.KindOpenURL, models.KindOpenConfig:
		return []string{ActionOpen}
	case models.KindNotification:
		if a.Invocation.StatusSummary {
			return []string{ActionNotify, ActionTerminal}
		}
		return []string{ActionNotify}
	case models.KindServiceControl:
		return []string{ActionStart, ActionStop, ActionRestart}
	case models.KindFollowLog, models.KindTerminalCommand:
		return []string{ActionTerminal}
	default:
		return []string{}
	}
}

package models

import "strings"

// Default values written to a fresh config.json.
const (
	DefaultDashboardURL   = "http://127.0.0.1:18789/"
	DefaultCLI            = "clawdbot"
	DefaultGatewayService = "clawdbot-gateway.service"
	DefaultDaemonService  = "clawdbot-daemon.service"
	DefaultTrigger        = "claw"

	// RunnerService is the user unit the runner itself is installed as.
	RunnerService = "claw-runner.service"
)

// Config represents the runner settings.
// This corresponds to ~/.config/claw-runner/config.json.
type Config struct {
	DashboardURL   string `json:"dashboardUrl"`
	CLI            string `json:"cli"`
	GatewayService string `json:"gatewayService"`
	DaemonService  string `json:"daemonService"`
	Terminal       string `json:"terminal"` // command, or template containing {cmd}

	// Optional keys, never written by default.
	Trigger  string              `json:"trigger,omitempty"`
	Keywords map[string][]string `json:"keywords,omitempty"` // group -> aliases
}

// NewConfig creates a config with default values.
func NewConfig() *Config {
	return &Config{
		DashboardURL:   DefaultDashboardURL,
		CLI:            DefaultCLI,
		GatewayService: DefaultGatewayService,
		DaemonService:  DefaultDaemonService,
		Terminal:       "",
	}
}

// ApplyDefaults trims every string setting and fills empty ones with defaults.
// Terminal stays empty when unset so the resolver can fall through to
// $TERMINAL and auto-detection.
func (c *Config) ApplyDefaults() {
	def := NewConfig()
	c.DashboardURL = orDefault(c.DashboardURL, def.DashboardURL)
	c.CLI = orDefault(c.CLI, def.CLI)
	c.GatewayService = orDefault(c.GatewayService, def.GatewayService)
	c.DaemonService = orDefault(c.DaemonService, def.DaemonService)
	c.Terminal = strings.TrimSpace(c.Terminal)
	c.Trigger = strings.ToLower(strings.TrimSpace(c.Trigger))
}

// TriggerWord returns the launcher prefix word.
func (c *Config) TriggerWord() string {
	if c.Trigger == "" {
		return DefaultTrigger
	}
	return c.Trigger
}

func orDefault(v, def string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return def
	}
	return v
}

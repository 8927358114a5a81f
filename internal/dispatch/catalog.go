package dispatch

import (
	"fmt"

	"github.com/openclaw/claw-runner/internal/models"
	"github.com/openclaw/claw-runner/internal/status"
)

// Stable action ids. Hosts hand these back on run.
const (
	IDOpenDashboard  = "open-dashboard"
	IDStatusConcise  = "status-concise"
	IDStatusVerbose  = "status-verbose"
	IDMemory         = "memory"
	IDGatewayStart   = "gateway-start"
	IDGatewayStop    = "gateway-stop"
	IDGatewayRestart = "gateway-restart"
	IDDaemonStart    = "daemon-start"
	IDDaemonStop     = "daemon-stop"
	IDDaemonRestart  = "daemon-restart"
	IDLogsGateway    = "logs-gateway"
	IDLogsDaemon     = "logs-daemon"
	IDLogsRunner     = "logs-runner"
	IDOpenConfig     = "open-config"
)

// TopLevel is shown for empty and unrecognized queries, in this order.
var TopLevel = []string{
	IDOpenDashboard,
	IDStatusConcise,
	IDLogsGateway,
	IDGatewayRestart,
	IDOpenConfig,
}

// Catalog builds every action for cfg, in display order.
func Catalog(cfg *models.Config) []models.Action {
	actions := []models.Action{
		{
			ID:         IDOpenDashboard,
			Label:      "Open OpenClaw dashboard",
			Subtext:    cfg.DashboardURL,
			Icon:       "applications-internet",
			Kind:       models.KindOpenURL,
			Group:      GroupDashboard,
			Invocation: models.Invocation{URL: cfg.DashboardURL},
		},
		{
			ID:         IDStatusConcise,
			Label:      "Status (concise)",
			Subtext:    "Gateway/TG/WA/Sessions summary",
			Icon:       "dialog-information",
			Kind:       models.KindNotification,
			Group:      GroupStatus,
			Modifier:   "concise",
			Invocation: models.Invocation{StatusSummary: true},
		},
		{
			ID:       IDStatusVerbose,
			Label:    "Status (verbose)",
			Subtext:  fmt.Sprintf("Open terminal: %s status %s", cfg.CLI, status.VerboseFlag),
			Icon:     "utilities-terminal",
			Kind:     models.KindTerminalCommand,
			Group:    GroupStatus,
			Modifier: "verbose",
			Invocation: models.Invocation{
				CLIArgs:      []string{"status", status.VerboseFlag},
				FallbackArgs: []string{"status"},
			},
		},
		{
			ID:      IDMemory,
			Label:   "Memory status",
			Subtext: fmt.Sprintf("Open terminal: %s status %s", cfg.CLI, status.VerboseFlag),
			Icon:    "utilities-system-monitor",
			Kind:    models.KindTerminalCommand,
			Group:   GroupMemory,
			Invocation: models.Invocation{
				CLIArgs:      []string{"status", status.VerboseFlag},
				FallbackArgs: []string{"status"},
			},
		},
	}

	actions = append(actions, serviceActions("Gateway", GroupGateway, cfg.GatewayService)...)
	actions = append(actions, serviceActions("Daemon", GroupDaemon, cfg.DaemonService)...)

	actions = append(actions,
		logAction(IDLogsGateway, "Follow gateway logs", GroupGateway, cfg.GatewayService),
		logAction(IDLogsDaemon, "Follow daemon logs", GroupDaemon, cfg.DaemonService),
		logAction(IDLogsRunner, "Follow claw-runner logs", "runner", models.RunnerService),
		models.Action{
			ID:      IDOpenConfig,
			Label:   "Open config",
			Subtext: "~/.config/claw-runner/config.json",
			Icon:    "document-edit",
			Kind:    models.KindOpenConfig,
			Group:   GroupConfig,
		},
	)
	return actions
}

func serviceActions(name, group, unit string) []models.Action {
	verbs := []string{"start", "stop", "restart"}
	actions := make([]models.Action, 0, len(verbs))
	for _, verb := range verbs {
		actions = append(actions, models.Action{
			ID:         group + "-" + verb,
			Label:      fmt.Sprintf("%s: %s", name, verb),
			Subtext:    fmt.Sprintf("systemctl --user %s %s", verb, unit),
			Icon:       "network-server",
			Kind:       models.KindServiceControl,
			Group:      group,
			Modifier:   verb,
			Invocation: models.Invocation{Verb: verb, Unit: unit},
		})
	}
	return actions
}

// logAction builds a follow-log action. Log actions all live in GroupLogs;
// modifier names whose unit they follow.
func logAction(id, label, modifier, unit string) models.Action {
	return models.Action{
		ID:         id,
		Label:      label,
		Subtext:    fmt.Sprintf("journalctl --user -u %s -f", unit),
		Icon:       "text-x-log",
		Kind:       models.KindFollowLog,
		Group:      GroupLogs,
		Modifier:   modifier,
		Invocation: models.Invocation{Unit: unit},
	}
}

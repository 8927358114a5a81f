package krunner

import (
	"bytes"
	"fmt"
	"strings"
)

// ManifestFileName is the descriptor's name under
// ~/.local/share/krunner/dbusplugins/.
const ManifestFileName = "claw-runner.desktop"

// ManifestOptions fills the descriptor.
type ManifestOptions struct {
	Version string
	Trigger string
}

// Manifest renders the static .desktop descriptor KRunner reads at startup to
// find the runner on the bus.
func Manifest(opts ManifestOptions) string {
	trigger := strings.TrimSpace(opts.Trigger)
	if trigger == "" {
		trigger = "claw"
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}

	entries := [][2]string{
		{"Name", "OpenClaw"},
		{"Comment", "Dashboard, status, logs and gateway control for OpenClaw"},
		{"X-KDE-ServiceTypes", "Plasma/Runner"},
		{"Type", "Service"},
		{"Icon", "applications-internet"},
		{"X-KDE-PluginInfo-Author", "OpenClaw"},
		{"X-KDE-PluginInfo-Name", "claw-runner"},
		{"X-KDE-PluginInfo-Version", version},
		{"X-KDE-PluginInfo-License", "MIT"},
		{"X-KDE-PluginInfo-EnabledByDefault", "true"},
		{"X-Plasma-API", "DBus"},
		{"X-Plasma-API-Minimum-Version", "2.0"},
		{"X-Plasma-DBusRunner-Service", BusName},
		{"X-Plasma-DBusRunner-Path", string(ObjectPath)},
		{"X-Plasma-Request-Actions-Once", "true"},
		{"X-Plasma-Runner-Syntaxes", trigger + " :q:"},
		{"X-Plasma-Runner-Syntax-Descriptions", "OpenClaw actions: status, logs, gateway, daemon, config, memory"},
	}

	var buf bytes.Buffer
	buf.WriteString("[Desktop Entry]\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "%s=%s\n", e[0], e[1])
	}
	return buf.String()
}

// Package models contains shared data structures used across the application.
package models

// ActionKind says how an action is executed.
type ActionKind string

const (
	KindOpenURL         ActionKind = "open-url"
	KindNotification    ActionKind = "run-notification"
	KindServiceControl  ActionKind = "service-control"
	KindFollowLog       ActionKind = "follow-log"
	KindOpenConfig      ActionKind = "open-config"
	KindTerminalCommand ActionKind = "terminal-command"
)

// Action is one entry a launcher can show and run.
// Actions are built fresh per query and never persisted.
type Action struct {
	ID         string
	Label      string
	Subtext    string
	Icon       string
	Kind       ActionKind
	Group      string // keyword group the action belongs to
	Modifier   string // second query word that selects it within the group
	Relevance  float64
	Invocation Invocation
}

// Invocation holds the kind-specific details of an action.
type Invocation struct {
	URL string // open-url

	Message       string // run-notification, static text
	StatusSummary bool   // run-notification, collect CLI status instead of Message

	Verb string // service-control: start | stop | restart
	Unit string // service-control, follow-log

	CLIArgs      []string // terminal-command, arguments after the resolved CLI
	FallbackArgs []string // terminal-command, used when CLIArgs is rejected
}

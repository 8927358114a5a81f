// Package dispatch turns launcher queries into ordered action lists. It never
// spawns processes or touches the network, so it is safe to call on every
// keystroke.
package dispatch

import "strings"

// Action groups, named after the keyword that selects them.
const (
	GroupDashboard = "dashboard"
	GroupStatus    = "status"
	GroupLogs      = "logs"
	GroupGateway   = "gateway"
	GroupDaemon    = "daemon"
	GroupConfig    = "config"
	GroupMemory    = "memory"
)

// Keyword maps query words to an action group.
type Keyword struct {
	Group   string
	Aliases []string
}

// DefaultKeywords is the built-in table. Table order is match priority.
var DefaultKeywords = []Keyword{
	{Group: GroupDashboard, Aliases: []string{"dashboard", "open", "web"}},
	{Group: GroupStatus, Aliases: []string{"status", "health"}},
	{Group: GroupLogs, Aliases: []string{"logs", "log", "journal"}},
	{Group: GroupGateway, Aliases: []string{"gateway", "gw"}},
	{Group: GroupDaemon, Aliases: []string{"daemon"}},
	{Group: GroupConfig, Aliases: []string{"config", "settings"}},
	{Group: GroupMemory, Aliases: []string{"memory", "mem"}},
}

// KeywordTable returns DefaultKeywords with per-group alias overrides applied.
// Override keys naming unknown groups are ignored; an empty override list
// keeps the defaults.
func KeywordTable(overrides map[string][]string) []Keyword {
	table := make([]Keyword, len(DefaultKeywords))
	for i, kw := range DefaultKeywords {
		aliases := kw.Aliases
		if custom := normalizeAliases(overrides[kw.Group]); len(custom) > 0 {
			aliases = custom
		}
		table[i] = Keyword{Group: kw.Group, Aliases: aliases}
	}
	return table
}

func normalizeAliases(aliases []string) []string {
	var out []string
	for _, a := range aliases {
		a = strings.ToLower(strings.TrimSpace(a))
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

// lookupGroup returns the first group with an alias starting with word.
func lookupGroup(table []Keyword, word string) string {
	if word == "" {
		return ""
	}
	for _, kw := range table {
		for _, alias := range kw.Aliases {
			if strings.HasPrefix(alias, word) {
				return kw.Group
			}
		}
	}
	return ""
}

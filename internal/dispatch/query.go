package dispatch

import "strings"

// Query is a tokenized launcher query.
type Query struct {
	Raw       string
	Triggered bool   // the query started with the trigger word
	Keyword   string // primary word after the trigger
	Modifier  string // word after the keyword
}

// ParseQuery lower-cases and splits raw on whitespace. A leading trigger
// word is dropped. The trigger may also be glued to a keyword from table
// ("clawstatus"); any other word merely starting with it ("clawdbot") is kept
// whole as the keyword.
func ParseQuery(raw, trigger string, table []Keyword) Query {
	q := Query{Raw: raw}
	words := strings.Fields(strings.ToLower(raw))
	trigger = strings.ToLower(trigger)

	if len(words) > 0 && trigger != "" && strings.HasPrefix(words[0], trigger) {
		q.Triggered = true
		rest := strings.TrimPrefix(words[0], trigger)
		switch {
		case rest == "":
			words = words[1:]
		case lookupGroup(table, rest) != "":
			words[0] = rest
		}
	}

	if len(words) > 0 {
		q.Keyword = words[0]
	}
	if len(words) > 1 {
		q.Modifier = words[1]
	}
	return q
}

// HasTrigger reports whether raw is addressed to this runner, i.e. starts
// with the trigger word. Launchers that see every query use it as a gate.
func HasTrigger(raw, trigger string) bool {
	trigger = strings.ToLower(trigger)
	if trigger == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), trigger)
}

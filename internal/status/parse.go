package status

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/tidwall/gjson"

	"github.com/openclaw/claw-runner/internal/models"
)

var (
	okWords = map[string]bool{
		"ok": true, "up": true, "reachable": true, "running": true, "active": true,
		"connected": true, "configured": true, "linked": true, "true": true,
	}
	downWords = map[string]bool{
		"down": true, "error": true, "missing": true, "unlinked": true, "failed": true,
		"disconnected": true, "unreachable": true, "stopped": true, "inactive": true, "false": true,
	}
)

// NormalizeState maps a free-form state to OK, DOWN, or the upper-cased first
// word. Empty input yields "".
func NormalizeState(raw string) string {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return ""
	}
	word := strings.ToLower(strings.Trim(words[0], ".,;:()[]"))
	switch {
	case word == "":
		return ""
	case okWords[word]:
		return models.StateOK
	case downWords[word]:
		return models.StateDown
	default:
		return strings.ToUpper(word)
	}
}

// textField is a status field and the line labels it has been printed under.
type textField struct {
	name   string
	labels []string
}

var textFields = []textField{
	{name: models.FieldGateway, labels: []string{"Gateway"}},
	{name: models.FieldTelegram, labels: []string{"Telegram", "TG"}},
	{name: models.FieldWhatsApp, labels: []string{"WhatsApp", "WA"}},
}

var (
	labelPatterns = map[string]*regexp.Regexp{}
	tablePatterns = map[string]*regexp.Regexp{}
	sessionsRe    = regexp.MustCompile(`(?im)^\s*Sessions\s*:\s*(\d+)\b`)
)

func init() {
	for _, f := range textFields {
		for _, label := range f.labels {
			q := regexp.QuoteMeta(label)
			// "Label: value" lines.
			labelPatterns[label] = regexp.MustCompile(`(?im)^\s*` + q + `\s*:\s*(.+?)\s*$`)
			// Box-drawing table rows: "│ Telegram │ ... │ OK │".
			tablePatterns[label] = regexp.MustCompile(`(?m)^\s*[│|]\s*` + q + `\s*[│|].*?[│|]\s*([A-Z]+)\s*[│|]`)
		}
	}
}

// ParseText extracts fields from plain-text status output. Fields whose
// pattern does not match are left out; it never fails.
func ParseText(out string) *models.ParsedStatus {
	st := models.NewParsedStatus("text", out)
	text := ansi.Strip(out)

	for _, f := range textFields {
		if v := matchLabels(text, f.labels, labelPatterns); v != "" {
			st.Fields[f.name] = v
		}
	}

	// Newer releases print tables instead of "Label: value" lines.
	for _, f := range textFields {
		if _, ok := st.Fields[f.name]; ok {
			continue
		}
		if v := matchLabels(text, f.labels, tablePatterns); v != "" {
			st.Fields[f.name] = v
		}
	}

	if m := sessionsRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			st.Fields[models.FieldSessions] = strconv.Itoa(n)
		}
	}

	return st
}

func matchLabels(text string, labels []string, patterns map[string]*regexp.Regexp) string {
	for _, label := range labels {
		m := patterns[label].FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v := NormalizeState(m[1]); v != "" {
			return v
		}
	}
	return ""
}

// ParseJSON extracts fields from `status --json` output. It reports false
// when out is not a JSON object. Channel state has moved between several
// keys over releases; all known spellings are read, later ones overriding.
func ParseJSON(out string) (*models.ParsedStatus, bool) {
	trimmed := strings.TrimSpace(out)
	if trimmed == "" || !gjson.Valid(trimmed) {
		return nil, false
	}
	root := gjson.Parse(trimmed)
	if !root.IsObject() {
		return nil, false
	}

	st := models.NewParsedStatus("json", out)

	gw := firstExisting(root, "gateway.state", "gateway.reachable", "gateway.status")
	if !gw.Exists() {
		if g := root.Get("gateway"); g.Exists() && g.Type != gjson.Null && !g.IsObject() && !g.IsArray() {
			gw = g
		}
	}
	if v := jsonState(gw); v != "" {
		st.Fields[models.FieldGateway] = v
	}

	for _, key := range []string{"channels", "channelStatus"} {
		arr := root.Get(key)
		if !arr.IsArray() || len(arr.Array()) == 0 {
			continue
		}
		arr.ForEach(func(_, c gjson.Result) bool {
			if !c.IsObject() {
				return true
			}
			name := strings.ToLower(firstExisting(c, "channel", "name").String())
			setChannel(st, name, jsonState(firstExisting(c, "state", "status")))
			return true
		})
		break
	}

	root.Get("channelSummary").ForEach(func(_, line gjson.Result) bool {
		if line.Type != gjson.String {
			return true
		}
		label, value, ok := strings.Cut(line.Str, ":")
		if ok {
			setChannel(st, strings.ToLower(strings.TrimSpace(label)), NormalizeState(value))
		}
		return true
	})

	if root.Get("linkChannel.id").String() == "whatsapp" && root.Get("linkChannel.linked").Type == gjson.True {
		st.Fields[models.FieldWhatsApp] = models.StateOK
	}

	if n := firstExisting(root, "sessions.active", "sessions.count", "sessionCount", "sessions"); n.Type == gjson.Number {
		st.Fields[models.FieldSessions] = strconv.FormatInt(n.Int(), 10)
	}

	return st, true
}

func setChannel(st *models.ParsedStatus, name, state string) {
	if state == "" {
		return
	}
	switch name {
	case "telegram", "tg":
		st.Fields[models.FieldTelegram] = state
	case "whatsapp", "wa":
		st.Fields[models.FieldWhatsApp] = state
	}
}

func jsonState(r gjson.Result) string {
	switch r.Type {
	case gjson.True:
		return models.StateOK
	case gjson.False:
		return models.StateDown
	case gjson.String:
		return NormalizeState(r.Str)
	default:
		return ""
	}
}

// firstExisting returns the first path holding a non-null value.
func firstExisting(r gjson.Result, paths ...string) gjson.Result {
	for _, p := range paths {
		if v := r.Get(p); v.Exists() && v.Type != gjson.Null {
			return v
		}
	}
	return gjson.Result{}
}

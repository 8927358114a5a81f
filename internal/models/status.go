package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Status field names. Every field is optional.
const (
	FieldGateway  = "gateway"
	FieldTelegram = "telegram"
	FieldWhatsApp = "whatsapp"
	FieldSessions = "sessions"
)

// Status states after normalization.
const (
	StateOK   = "OK"
	StateDown = "DOWN"
)

// ParsedStatus is a best-effort structured view of the CLI status output.
type ParsedStatus struct {
	Fields map[string]string `json:"fields" yaml:"fields"`
	Source string            `json:"source" yaml:"source"` // "json" | "text"
	Raw    string            `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// NewParsedStatus creates an empty status for the given source.
func NewParsedStatus(source, raw string) *ParsedStatus {
	return &ParsedStatus{
		Fields: map[string]string{},
		Source: source,
		Raw:    raw,
	}
}

// Get returns a field and whether it was found.
func (s *ParsedStatus) Get(name string) (string, bool) {
	if s == nil || s.Fields == nil {
		return "", false
	}
	v, ok := s.Fields[name]
	return v, ok
}

// Sessions returns the session count when the CLI reported one.
func (s *ParsedStatus) Sessions() (int, bool) {
	v, ok := s.Get(FieldSessions)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// Summary renders the one-line notification text,
// e.g. "Gateway OK · TG OK · WA DOWN · Sessions 3".
func (s *ParsedStatus) Summary() string {
	parts := []string{
		"Gateway " + s.state(FieldGateway),
		"TG " + s.state(FieldTelegram),
		"WA " + s.state(FieldWhatsApp),
	}
	if n, ok := s.Sessions(); ok {
		parts = append(parts, fmt.Sprintf("Sessions %d", n))
	}
	return strings.Join(parts, " · ")
}

func (s *ParsedStatus) state(name string) string {
	v, ok := s.Get(name)
	if !ok || v == "" {
		return "?"
	}
	return v
}

package models

import "testing"

func TestParsedStatusSummary(t *testing.T) {
	tests := []struct {
		name     string
		fields   map[string]string
		expected string
	}{
		{
			name: "All fields",
			fields: map[string]string{
				FieldGateway:  StateOK,
				FieldTelegram: StateOK,
				FieldWhatsApp: StateDown,
				FieldSessions: "3",
			},
			expected: "Gateway OK · TG OK · WA DOWN · Sessions 3",
		},
		{
			name:     "Missing channels",
			fields:   map[string]string{FieldGateway: StateDown},
			expected: "Gateway DOWN · TG ? · WA ?",
		},
		{
			name:     "Nothing parsed",
			fields:   map[string]string{},
			expected: "Gateway ? · TG ? · WA ?",
		},
		{
			name:     "Unparseable session count",
			fields:   map[string]string{FieldGateway: StateOK, FieldSessions: "many"},
			expected: "Gateway OK · TG ? · WA ?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &ParsedStatus{Fields: tt.fields}
			if got := s.Summary(); got != tt.expected {
				t.Errorf("Summary() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParsedStatusGetOnNil(t *testing.T) {
	var s *ParsedStatus
	if _, ok := s.Get(FieldGateway); ok {
		t.Error("Get on nil status reported a field")
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	c := &Config{
		DashboardURL: "  https://gw.local/  ",
		CLI:          "",
		Terminal:     "  kitty ",
		Trigger:      " CLAW ",
	}
	c.ApplyDefaults()

	if c.DashboardURL != "https://gw.local/" {
		t.Errorf("DashboardURL = %q", c.DashboardURL)
	}
	if c.CLI != DefaultCLI {
		t.Errorf("CLI = %q, want %q", c.CLI, DefaultCLI)
	}
	if c.GatewayService != DefaultGatewayService {
		t.Errorf("GatewayService = %q, want %q", c.GatewayService, DefaultGatewayService)
	}
	if c.DaemonService != DefaultDaemonService {
		t.Errorf("DaemonService = %q, want %q", c.DaemonService, DefaultDaemonService)
	}
	if c.Terminal != "kitty" {
		t.Errorf("Terminal = %q, want kitty", c.Terminal)
	}
	if c.TriggerWord() != "claw" {
		t.Errorf("TriggerWord() = %q, want claw", c.TriggerWord())
	}
}

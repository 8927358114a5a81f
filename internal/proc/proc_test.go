package proc

import (
	"context"
	"errors"
	"os/exec"
	"testing"
	"time"
)

func TestResultMessage(t *testing.T) {
	tests := []struct {
		name     string
		result   Result
		expected string
	}{
		{
			name:     "Stderr wins",
			result:   Result{Code: 1, Stdout: "out", Stderr: "  Unit not found.\n"},
			expected: "Unit not found.",
		},
		{
			name:     "Stdout fallback",
			result:   Result{Code: 5, Stdout: "failed\n"},
			expected: "failed",
		},
		{
			name:     "Bare exit code",
			result:   Result{Code: 3},
			expected: "exit status 3",
		},
		{
			name:     "Timeout",
			result:   Result{Code: CodeTimeout, TimedOut: true, Stderr: "partial"},
			expected: "timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Message(); got != tt.expected {
				t.Errorf("Message() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestResultErr(t *testing.T) {
	ok := Result{Argv: []string{"systemctl"}, Code: 0}
	if err := ok.Err(); err != nil {
		t.Fatalf("Err() on success = %v", err)
	}

	failed := Result{Argv: []string{"systemctl"}, Code: 1, Stderr: "boom"}
	err := failed.Err()
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("Err() = %v, want ErrCommandFailed", err)
	}
}

func TestResultCombined(t *testing.T) {
	r := Result{Stdout: "a", Stderr: "b"}
	if got := r.Combined(); got != "a\nb" {
		t.Errorf("Combined() = %q", got)
	}
	r = Result{Stderr: "b"}
	if got := r.Combined(); got != "b" {
		t.Errorf("Combined() = %q", got)
	}
}

func TestSystemRun(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	res := System{}.Run(context.Background(), 5*time.Second, []string{"sh", "-c", "echo out; echo err >&2; exit 3"})
	if res.Code != 3 {
		t.Errorf("Code = %d, want 3", res.Code)
	}
	if res.Stdout != "out\n" || res.Stderr != "err\n" {
		t.Errorf("Stdout = %q, Stderr = %q", res.Stdout, res.Stderr)
	}
}

func TestSystemRunTimeout(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}

	res := System{}.Run(context.Background(), 50*time.Millisecond, []string{"sleep", "5"})
	if !res.TimedOut || res.Code != CodeTimeout {
		t.Errorf("TimedOut = %v, Code = %d", res.TimedOut, res.Code)
	}
}

func TestSystemRunMissingBinary(t *testing.T) {
	res := System{}.Run(context.Background(), time.Second, []string{"/nonexistent/claw-runner-test-binary"})
	if res.Code != CodeSpawnFailed {
		t.Errorf("Code = %d, want %d", res.Code, CodeSpawnFailed)
	}
	if res.OK() {
		t.Error("OK() = true for missing binary")
	}
}

// Package buildinfo holds version information injected at build time via ldflags:
//
//	-X github.com/openclaw/claw-runner/internal/buildinfo.Version=v0.3.0
package buildinfo

import "fmt"

var (
	Version    = "dev"
	CommitHash = "unknown"
	BuildDate  = "unknown"
)

// Summary returns "<version> (<commit>, <date>)".
func Summary() string {
	return fmt.Sprintf("%s (%s, %s)", Version, CommitHash, BuildDate)
}

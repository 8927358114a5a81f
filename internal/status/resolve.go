// Package status locates the gateway CLI, runs its status command and
// extracts what it can from output whose format drifts between releases.
package status

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// ErrCLINotFound is returned when the configured CLI cannot be located.
var ErrCLINotFound = errors.New("cli not found")

// AlternateNames are tried after the configured name; the CLI has shipped
// under each of them.
var AlternateNames = []string{"clawdbot", "moltbot", "openclaw"}

// Binary is the outcome of locating the CLI.
type Binary struct {
	Path       string
	Found      bool
	Configured string // what the user configured, for error messages
}

// Locator finds the CLI executable.
type Locator struct {
	LookPath func(string) (string, error)
	Home     string
	// CommonDirs are searched last, after PATH and nvm.
	CommonDirs []string
}

// NewLocator creates a locator using lookPath and the user's home directory.
func NewLocator(lookPath func(string) (string, error)) *Locator {
	home, _ := os.UserHomeDir()
	return &Locator{
		LookPath: lookPath,
		Home:     home,
		CommonDirs: []string{
			filepath.Join(home, ".local", "bin"),
			"/usr/local/bin",
			"/usr/bin",
		},
	}
}

// Locate resolves the configured CLI.
//
// An absolute path is trusted as is so errors name the exact path. A relative
// path containing a slash is resolved against the working directory. A bare
// name is searched on PATH (with the alternate names), then in nvm installs
// newest first, then in CommonDirs.
func (l *Locator) Locate(configured string) Binary {
	configured = strings.TrimSpace(configured)
	if configured == "" {
		configured = AlternateNames[0]
	}
	bin := Binary{Path: configured, Configured: configured}

	expanded := l.expandHome(configured)
	if filepath.IsAbs(expanded) {
		bin.Path = expanded
		bin.Found = isExecutable(expanded)
		return bin
	}
	if strings.Contains(expanded, "/") {
		if abs, err := filepath.Abs(expanded); err == nil {
			bin.Path = abs
			bin.Found = isExecutable(abs)
		}
		return bin
	}

	names := candidateNames(expanded)

	for _, name := range names {
		if p, err := l.LookPath(name); err == nil {
			bin.Path, bin.Found = p, true
			return bin
		}
	}

	for _, dir := range l.nvmBinDirs() {
		if p, ok := findIn(dir, names); ok {
			bin.Path, bin.Found = p, true
			return bin
		}
	}

	for _, dir := range l.CommonDirs {
		if p, ok := findIn(dir, names); ok {
			bin.Path, bin.Found = p, true
			return bin
		}
	}

	return bin
}

func (l *Locator) expandHome(p string) string {
	if p == "~" {
		return l.Home
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(l.Home, p[2:])
	}
	return p
}

// nvmBinDirs lists ~/.nvm/versions/node/<v>/bin, newest version first.
func (l *Locator) nvmBinDirs() []string {
	if l.Home == "" {
		return nil
	}
	root := filepath.Join(l.Home, ".nvm", "versions", "node")
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	type versioned struct {
		v   nodeVersion
		dir string
	}
	var found []versioned
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		v, _ := parseNodeVersion(e.Name())
		found = append(found, versioned{v: v, dir: filepath.Join(root, e.Name(), "bin")})
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[j].v.less(found[i].v)
	})

	dirs := make([]string, len(found))
	for i, f := range found {
		dirs[i] = f.dir
	}
	return dirs
}

func candidateNames(primary string) []string {
	names := []string{primary}
	for _, n := range AlternateNames {
		if n != primary {
			names = append(names, n)
		}
	}
	return names
}

func findIn(dir string, names []string) (string, bool) {
	for _, name := range names {
		p := filepath.Join(dir, name)
		if isExecutable(p) {
			return p, true
		}
	}
	return "", false
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}

// nodeVersion is a major.minor.patch triple from an nvm directory name.
type nodeVersion [3]int

// parseNodeVersion parses names like "v22.14.0". Unparseable names sort as
// 0.0.0 so they are tried last.
func parseNodeVersion(name string) (nodeVersion, bool) {
	var v nodeVersion
	parts := strings.SplitN(strings.TrimPrefix(name, "v"), ".", 3)
	if len(parts) != 3 {
		return nodeVersion{}, false
	}
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nodeVersion{}, false
		}
		v[i] = n
	}
	return v, true
}

func (v nodeVersion) less(other nodeVersion) bool {
	for i := range v {
		if v[i] != other[i] {
			return v[i] < other[i]
		}
	}
	return false
}

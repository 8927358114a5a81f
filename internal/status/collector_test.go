package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclaw/claw-runner/internal/models"
	"github.com/openclaw/claw-runner/internal/proc"
	"github.com/openclaw/claw-runner/internal/proc/proctest"
)

func installExecutable(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0755))
}

func newTestCollector(fake *proctest.Fake) *Collector {
	c := NewCollector(fake)
	c.Locator.Home = ""
	c.Locator.CommonDirs = nil
	return c
}

func TestCollect_PrefersJSON(t *testing.T) {
	fake := proctest.New()
	fake.Install("clawdbot")
	fake.OnRun(proc.Result{Stdout: `{"gateway":{"state":"ok"},"sessionCount":1}`}, "/usr/bin/clawdbot", "status", "--json")

	st, err := newTestCollector(fake).Collect(context.Background(), "clawdbot")
	require.NoError(t, err)
	assert.Equal(t, "json", st.Source)
	assert.Equal(t, "Gateway OK · TG ? · WA ? · Sessions 1", st.Summary())
	assert.Len(t, fake.Runs, 1)
}

func TestCollect_FallsBackThroughJSONVariantsToText(t *testing.T) {
	fake := proctest.New()
	fake.Install("clawdbot")
	fake.OnRun(proc.Result{Code: 1, Stderr: "unknown option --json"}, "/usr/bin/clawdbot", "status", "--json")
	fake.OnRun(proc.Result{Stdout: "not json"}, "/usr/bin/clawdbot", "status", "--format", "json")
	fake.OnRun(proc.Result{Stdout: "Gateway: OK\nTelegram: OK\n", Stderr: "WhatsApp: DOWN\n"}, "/usr/bin/clawdbot", "status")

	st, err := newTestCollector(fake).Collect(context.Background(), "clawdbot")
	require.NoError(t, err)
	assert.Equal(t, "text", st.Source)
	assert.Equal(t, "DOWN", st.Fields[models.FieldWhatsApp], "stderr is part of the combined output")
	assert.Len(t, fake.Runs, 3)
	assert.Equal(t, newTestCollector(fake).TextTimeout, fake.Timeouts[2])
}

func TestCollect_TextFailureIsError(t *testing.T) {
	fake := proctest.New()
	fake.Install("clawdbot")
	fake.OnRun(proc.Result{Code: 2, Stderr: "gateway unreachable"}, "/usr/bin/clawdbot", "status")

	_, err := newTestCollector(fake).Collect(context.Background(), "clawdbot")
	require.Error(t, err)
	assert.ErrorIs(t, err, proc.ErrCommandFailed)
	assert.Contains(t, err.Error(), "gateway unreachable")
}

func TestCollect_NonzeroExitWithFieldsIsParsed(t *testing.T) {
	fake := proctest.New()
	fake.Install("clawdbot")
	fake.OnRun(proc.Result{Code: 1, Stdout: "Gateway: DOWN\nTelegram: OK\n"}, "/usr/bin/clawdbot", "status")

	st, err := newTestCollector(fake).Collect(context.Background(), "clawdbot")
	require.NoError(t, err)
	assert.Equal(t, "text", st.Source)
	assert.Equal(t, "Gateway DOWN · TG OK · WA ?", st.Summary())
	assert.Contains(t, st.Raw, "Gateway: DOWN")
}

func TestCollect_CLINotFound(t *testing.T) {
	fake := proctest.New()

	_, err := newTestCollector(fake).Collect(context.Background(), "clawdbot")
	assert.ErrorIs(t, err, ErrCLINotFound)
	assert.Equal(t, 0, fake.Spawned())
}

func TestCommandArgv_ProbesPreferred(t *testing.T) {
	fake := proctest.New()
	fake.Install("openclaw")
	c := newTestCollector(fake)

	argv, err := c.CommandArgv(context.Background(), "openclaw", []string{"status", VerboseFlag}, []string{"status"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/openclaw", "status"}, argv, "probe failed, fallback used")

	fake.OnRun(proc.Result{}, "/usr/bin/openclaw", "status", VerboseFlag)
	argv, err = c.CommandArgv(context.Background(), "openclaw", []string{"status", VerboseFlag}, []string{"status"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/usr/bin/openclaw", "status", VerboseFlag}, argv)
}

func TestLocate_AlternateNamesOnPath(t *testing.T) {
	fake := proctest.New()
	fake.Install("moltbot")
	l := &Locator{LookPath: fake.LookPath}

	bin := l.Locate("clawdbot")
	assert.True(t, bin.Found)
	assert.Equal(t, "/usr/bin/moltbot", bin.Path)
	assert.Equal(t, "clawdbot", bin.Configured)
}

func TestLocate_AbsolutePathTrusted(t *testing.T) {
	dir := t.TempDir()
	exe := filepath.Join(dir, "openclaw")
	installExecutable(t, exe)
	l := &Locator{LookPath: proctest.New().LookPath}

	bin := l.Locate(exe)
	assert.True(t, bin.Found)
	assert.Equal(t, exe, bin.Path)

	missing := filepath.Join(dir, "gone")
	bin = l.Locate(missing)
	assert.False(t, bin.Found)
	assert.Equal(t, missing, bin.Path)
}

func TestLocate_HomeRelativePath(t *testing.T) {
	home := t.TempDir()
	installExecutable(t, filepath.Join(home, "bin", "clawdbot"))
	l := &Locator{LookPath: proctest.New().LookPath, Home: home}

	bin := l.Locate("~/bin/clawdbot")
	assert.True(t, bin.Found)
	assert.Equal(t, filepath.Join(home, "bin", "clawdbot"), bin.Path)
}

func TestLocate_NewestNvmWins(t *testing.T) {
	home := t.TempDir()
	nvm := filepath.Join(home, ".nvm", "versions", "node")
	installExecutable(t, filepath.Join(nvm, "v18.20.1", "bin", "clawdbot"))
	installExecutable(t, filepath.Join(nvm, "v22.14.0", "bin", "openclaw"))
	installExecutable(t, filepath.Join(nvm, "v9.11.2", "bin", "clawdbot"))
	require.NoError(t, os.MkdirAll(filepath.Join(nvm, "system"), 0755))

	l := &Locator{LookPath: proctest.New().LookPath, Home: home}
	bin := l.Locate("clawdbot")
	assert.True(t, bin.Found)
	assert.Equal(t, filepath.Join(nvm, "v22.14.0", "bin", "openclaw"), bin.Path)
}

func TestLocate_CommonDirsLast(t *testing.T) {
	dir := t.TempDir()
	installExecutable(t, filepath.Join(dir, "clawdbot"))
	nonExec := filepath.Join(dir, "moltbot")
	require.NoError(t, os.WriteFile(nonExec, []byte("x"), 0644))

	l := &Locator{LookPath: proctest.New().LookPath, CommonDirs: []string{dir}}
	bin := l.Locate("moltbot")
	assert.True(t, bin.Found, "non-executable primary skipped, alternate found")
	assert.Equal(t, filepath.Join(dir, "clawdbot"), bin.Path)

	l.CommonDirs = nil
	assert.False(t, l.Locate("moltbot").Found)
}

func TestParseNodeVersion(t *testing.T) {
	v, ok := parseNodeVersion("v22.14.0")
	assert.True(t, ok)
	assert.Equal(t, nodeVersion{22, 14, 0}, v)

	_, ok = parseNodeVersion("system")
	assert.False(t, ok)

	assert.True(t, nodeVersion{9, 11, 2}.less(nodeVersion{18, 0, 0}))
	assert.False(t, nodeVersion{18, 0, 0}.less(nodeVersion{18, 0, 0}))
}

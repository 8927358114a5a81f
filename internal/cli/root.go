// Package cli implements the claw-runner commands.
package cli

import (
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/openclaw/claw-runner/internal/config"
	"github.com/openclaw/claw-runner/internal/dispatch"
	"github.com/openclaw/claw-runner/internal/invoke"
	"github.com/openclaw/claw-runner/internal/krunner"
	"github.com/openclaw/claw-runner/internal/proc"
)

// LogLevelEnv set to quiet, warn or error silences informational logging.
const LogLevelEnv = "CLAW_RUNNER_LOGLEVEL"

var configFlag string

var rootCmd = &cobra.Command{
	Use:   "claw-runner",
	Short: "Launcher quick actions for OpenClaw",
	Long: `claw-runner answers KRunner queries starting with "claw" with quick actions
for the OpenClaw gateway: open the dashboard, show status, follow logs and
start, stop or restart the user services.

The same actions are available from the command line, an interactive picker
and an optional tray icon.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default $XDG_CONFIG_HOME/claw-runner/config.json)")

	// Add subcommands (alphabetical)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(pickCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(terminalCmd)
	rootCmd.AddCommand(versionCmd)
}

func setupLogging() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(LogLevelEnv))) {
	case "quiet", "warn", "warning", "error":
		invoke.ErrorLog = log.New(os.Stderr, log.Prefix(), log.Flags())
		log.SetOutput(io.Discard)
	}
}

// configPath returns the --config value or the default location.
func configPath() (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	return config.File()
}

// loadStore creates a store and loads the config file once. A malformed file
// is logged and the defaults are used.
func loadStore() (*config.Store, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	store := config.NewStore(path)
	if err := store.Reload(); err != nil {
		if !errors.Is(err, config.ErrInvalidConfig) {
			return nil, err
		}
		log.Printf("Using defaults: %v", err)
	}
	return store, nil
}

// app wires the packages every command shares.
type app struct {
	store    *config.Store
	runner   *invoke.Runner
	provider *krunner.Provider
}

func newApp(notifier invoke.Notifier) (*app, error) {
	store, err := loadStore()
	if err != nil {
		return nil, err
	}
	runner := invoke.NewRunner(proc.System{}, notifier, store)
	return &app{
		store:    store,
		runner:   runner,
		provider: krunner.NewProvider(store, runner),
	}, nil
}

func (a *app) dispatcher() *dispatch.Dispatcher {
	return dispatch.New(a.store.Current())
}

func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

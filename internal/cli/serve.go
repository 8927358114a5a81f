package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openclaw/claw-runner/internal/buildinfo"
	"github.com/openclaw/claw-runner/internal/config"
	"github.com/openclaw/claw-runner/internal/invoke"
	"github.com/openclaw/claw-runner/internal/krunner"
	"github.com/openclaw/claw-runner/internal/models"
	"github.com/openclaw/claw-runner/internal/tray"
)

var serveTray bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the KRunner D-Bus provider",
	Long: `Run the org.kde.krunner1 provider on the session bus until interrupted.

With --tray the actions are also listed in a system tray icon.
The config file is watched and reloaded on change.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveTray, "tray", false, "Also show a system tray icon")
}

func runServe(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsRunnerRunning()
	if err != nil {
		return fmt.Errorf("failed to check runner status: %w", err)
	}
	if running && info.PID != os.Getpid() {
		return fmt.Errorf("claw-runner already running (PID %d)", info.PID)
	}

	a, err := newApp(invoke.DesktopNotifier{Icon: "applications-internet"})
	if err != nil {
		return err
	}

	watcher, err := config.NewWatcher(a.store)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		log.Printf("Config watcher disabled: %v", err)
	}
	defer watcher.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveTray {
		return serveWithTray(ctx, a, watcher)
	}
	return serveForeground(ctx, a, watcher)
}

func writeRunnerInfo(withTray bool) {
	info := models.NewRunnerInfo(buildinfo.Summary(), krunner.BusName, string(krunner.ObjectPath), os.Getpid(), withTray)
	if err := config.SaveRunnerInfo(info); err != nil {
		log.Printf("Failed to write runner info: %v", err)
	}
}

func removeRunnerInfo() {
	if err := config.RemoveRunnerInfo(); err != nil {
		log.Printf("Failed to remove runner info: %v", err)
	}
}

// logReloads drains watcher events until ctx is done, calling onReload after
// each successful reload.
func logReloads(ctx context.Context, watcher *config.Watcher, onReload func()) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-watcher.Events():
			if !ok {
				return
			}
			if ev.Err != nil {
				log.Printf("Config reload: %v (using defaults)", ev.Err)
			}
			if onReload != nil {
				onReload()
			}
		}
	}
}

// serveForeground serves the bus without a tray, blocking until ctx is done.
func serveForeground(ctx context.Context, a *app, watcher *config.Watcher) error {
	writeRunnerInfo(false)
	defer removeRunnerInfo()

	go logReloads(ctx, watcher, nil)

	log.Printf("claw-runner %s started (PID %d)", buildinfo.Version, os.Getpid())
	err := krunner.Serve(ctx, a.provider)
	fmt.Println("claw-runner stopped")
	return err
}

// serveWithTray runs the tray on the main goroutine and the bus in the
// background. Either one ending stops the other.
func serveWithTray(ctx context.Context, a *app, watcher *config.Watcher) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)

	onStart := func() {
		writeRunnerInfo(true)

		go func() {
			err := krunner.Serve(ctx, a.provider)
			if err != nil {
				log.Printf("Provider error: %v", err)
			}
			errCh <- err
			tray.Quit()
		}()

		go logReloads(ctx, watcher, tray.Refresh)

		// Quit the tray on SIGINT/SIGTERM
		go func() {
			<-ctx.Done()
			tray.Quit()
		}()
	}

	onExit := func() {
		cancel()
		removeRunnerInfo()
		fmt.Println("claw-runner stopped")
	}

	// This blocks the main goroutine until the tray exits.
	tray.Run(a.provider, onStart, onExit)
	return <-errCh
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/openclaw/claw-runner/internal/buildinfo"
	"github.com/openclaw/claw-runner/internal/config"
	"github.com/openclaw/claw-runner/internal/krunner"
	"github.com/openclaw/claw-runner/internal/proc"
	"github.com/openclaw/claw-runner/internal/terminal"
)

var terminalCmd = &cobra.Command{
	Use:   "terminal [--] <command...>",
	Short: "Show how a command would be launched in a terminal",
	Long: `Resolve the terminal emulator (config, $TERMINAL, then auto-detection) and
print the argument list that would run the command in it. Nothing is started.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTerminal,
}

var manifestOutput string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Print the KRunner .desktop descriptor",
	Long: `Print the static descriptor KRunner reads to find this runner on the bus.
Install it as ~/.local/share/krunner/dbusplugins/` + krunner.ManifestFileName + `.`,
	Args: cobra.NoArgs,
	RunE: runManifest,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the running provider",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

func init() {
	manifestCmd.Flags().StringVarP(&manifestOutput, "output", "o", "", "Write to file instead of stdout")
}

func runTerminal(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	argv, err := terminal.NewResolver(proc.System{}.LookPath).Argv(store.Current().Terminal, args)
	if err != nil {
		return err
	}
	fmt.Println(shellquote.Join(argv...))
	return nil
}

func runManifest(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}

	text := krunner.Manifest(krunner.ManifestOptions{
		Version: buildinfo.Version,
		Trigger: store.Current().TriggerWord(),
	})
	if manifestOutput == "" {
		fmt.Print(text)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(manifestOutput), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(manifestOutput, []byte(text), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	fmt.Println(styleSuccess.Render("Wrote " + manifestOutput))
	return nil
}

func runInfo(cmd *cobra.Command, args []string) error {
	running, info, err := config.IsRunnerRunning()
	if err != nil {
		return fmt.Errorf("failed to check runner status: %w", err)
	}

	if !running || info == nil {
		fmt.Println("claw-runner is not running.")
		return nil
	}

	uptime := time.Since(info.StartedAt).Truncate(time.Second)

	fmt.Println(styleSuccess.Render("claw-runner is running."))
	fmt.Printf("  %s%s\n", label("Version"), info.BuildVersion)
	fmt.Printf("  %s%s\n", label("Bus name"), info.BusName)
	fmt.Printf("  %s%s\n", label("Object"), info.ObjectPath)
	fmt.Printf("  %s%d\n", label("PID"), info.PID)
	fmt.Printf("  %s%v\n", label("Tray"), info.Tray)
	fmt.Printf("  %s%s\n", label("Uptime"), uptime)
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/openclaw/claw-runner/internal/models"
	"github.com/openclaw/claw-runner/internal/proc"
	"github.com/openclaw/claw-runner/internal/status"
)

var (
	statusFormat string
	statusRaw    bool
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Collect and show the gateway status",
	Long: `Run "<cli> status", parse it and show the recognized fields.

Fields the CLI did not print are shown as "?".`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "text", "Output format: text, json or yaml")
	statusCmd.Flags().BoolVar(&statusRaw, "raw", false, "Also print the raw CLI output")
}

func runStatus(cmd *cobra.Command, args []string) error {
	store, err := loadStore()
	if err != nil {
		return err
	}
	cfg := store.Current()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	st, err := status.NewCollector(proc.System{}).Collect(ctx, cfg.CLI)
	if err != nil {
		return err
	}

	if !statusRaw {
		st.Raw = ""
	}

	switch statusFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	case "yaml":
		enc := yaml.NewEncoder(os.Stdout)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(st)
	case "text":
		printStatus(st)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", statusFormat)
	}
}

func printStatus(st *models.ParsedStatus) {
	fmt.Println(styleBrand.Render("OpenClaw status") + styleHint.Render(" ("+st.Source+")"))
	fmt.Printf("  %s%s\n", label("Gateway"), renderState(st.Get(models.FieldGateway)))
	fmt.Printf("  %s%s\n", label("Telegram"), renderState(st.Get(models.FieldTelegram)))
	fmt.Printf("  %s%s\n", label("WhatsApp"), renderState(st.Get(models.FieldWhatsApp)))
	if n, ok := st.Sessions(); ok {
		fmt.Printf("  %s%d\n", label("Sessions"), n)
	} else {
		fmt.Printf("  %s%s\n", label("Sessions"), renderState(""))
	}

	if st.Raw != "" {
		fmt.Println()
		fmt.Println(styleHint.Render(st.Raw))
	}
}

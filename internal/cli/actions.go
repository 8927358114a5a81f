package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openclaw/claw-runner/internal/invoke"
	"github.com/openclaw/claw-runner/internal/models"
	"github.com/openclaw/claw-runner/internal/picker"
)

var matchAll bool

var matchCmd = &cobra.Command{
	Use:   "match [query...]",
	Short: "Show the actions a launcher query produces",
	Long: `Show the actions a launcher query produces, in display order.

Without a query the top-level actions are shown. --all lists the whole catalog.`,
	RunE: runMatch,
}

var runAction string

var runCmd = &cobra.Command{
	Use:   "run <match-id>",
	Short: "Run one action by id",
	Long: `Run one action by its match id (see "claw-runner match").

Failures are shown as a desktop notification and the command exits non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

var pickCmd = &cobra.Command{
	Use:   "pick [query...]",
	Short: "Choose and run an action interactively",
	RunE:  runPick,
}

func init() {
	matchCmd.Flags().BoolVar(&matchAll, "all", false, "List every action")
	runCmd.Flags().StringVar(&runAction, "action", "", "Secondary action id (terminal, start, stop, restart, ...)")
}

func runMatch(cmd *cobra.Command, args []string) error {
	a, err := newApp(invoke.LogNotifier{})
	if err != nil {
		return err
	}

	var actions []models.Action
	if matchAll {
		actions = a.dispatcher().All()
	} else {
		actions = a.dispatcher().Matches(strings.Join(args, " "))
	}

	for _, act := range actions {
		if stdoutIsTerminal() {
			fmt.Printf("%s  %s\n", styleCommand.Render(padRight(act.ID, 16)), styleValue.Render(act.Label))
			if act.Subtext != "" {
				fmt.Printf("%s  %s\n", padRight("", 16), styleHint.Render(act.Subtext))
			}
			continue
		}
		fmt.Printf("%s\t%.2f\t%s\t%s\n", act.ID, act.Relevance, act.Label, act.Subtext)
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	a, err := newApp(invoke.DesktopNotifier{Icon: "applications-internet"})
	if err != nil {
		return err
	}

	cfg, action, err := a.provider.Resolve(args[0], runAction)
	if err != nil {
		return err
	}
	return execute(cmd.Context(), a, cfg, action)
}

func runPick(cmd *cobra.Command, args []string) error {
	if !stdoutIsTerminal() {
		return errors.New("pick needs a terminal; use \"claw-runner run <id>\"")
	}

	a, err := newApp(invoke.DesktopNotifier{Icon: "applications-internet"})
	if err != nil {
		return err
	}

	action, ok, err := picker.Run(a.dispatcher().Matches, strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	return execute(cmd.Context(), a, a.store.Current(), action)
}

// execute runs an action in the foreground and prints the outcome.
func execute(ctx context.Context, a *app, cfg *models.Config, action models.Action) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := a.runner.Execute(ctx, cfg, action); err != nil {
		fmt.Fprintln(os.Stderr, styleError.Render("✗ "+action.Label))
		return err
	}
	fmt.Println(styleSuccess.Render("✓ " + action.Label))
	return nil
}

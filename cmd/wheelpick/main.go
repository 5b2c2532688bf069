package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gravitrone/wheelpick/internal/cmd"
	"github.com/gravitrone/wheelpick/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, cmd.ErrCancelled) {
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	// Force truecolor so hex colors render correctly
	// Must be set before any lipgloss style initialization
	os.Setenv("COLORTERM", "truecolor")
}

func newRootCmd() *cobra.Command {
	var debug bool
	root := &cobra.Command{
		Use:   "wheelpick",
		Short: "Wheelpick - looping scroll pickers for the terminal",
		Long:  "Wheelpick shows date, time and list pickers built from endlessly looping wheels and prints the confirmed value on stdout.",
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			if err := logger.Init(logger.Options{Enabled: debug, Level: slog.LevelDebug}); err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVar(&debug, "debug", false, "write debug logs to ~/.wheelpick/logs")

	root.AddCommand(cmd.DateCmd())
	root.AddCommand(cmd.TimeCmd())
	root.AddCommand(cmd.ListCmd())
	root.AddCommand(cmd.ConfigCmd())
	return root
}

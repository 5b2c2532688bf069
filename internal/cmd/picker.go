package cmd

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/wheelpick/internal/config"
	"github.com/gravitrone/wheelpick/internal/logger"
	"github.com/gravitrone/wheelpick/internal/ui"
)

// ErrCancelled is returned when the user leaves a picker without confirming.
var ErrCancelled = errors.New("selection cancelled")

// runProgram runs a picker model to completion. Tests swap it out.
var runProgram = func(m tea.Model, opts ...tea.ProgramOption) (tea.Model, error) {
	return tea.NewProgram(m, opts...).Run()
}

// selectorFlags override the config file for one run.
type selectorFlags struct {
	loop        bool
	replication int
	itemHeight  float64
	rows        int
	commitDelay time.Duration
	vim         bool
}

func (f *selectorFlags) register(cmd *cobra.Command) {
	defaults := config.Default()
	flags := cmd.Flags()
	flags.BoolVar(&f.loop, "loop", defaults.Loop, "wrap around at the ends of the list")
	flags.IntVar(&f.replication, "replication", defaults.ReplicationFactor, "copies of the list laid out for looping (odd)")
	flags.Float64Var(&f.itemHeight, "item-height", defaults.ItemHeight, "height of one row in scroll units")
	flags.IntVar(&f.rows, "rows", defaults.ViewportRows, "visible rows per column")
	flags.DurationVar(&f.commitDelay, "commit-delay", time.Duration(defaults.CommitDelayMS)*time.Millisecond, "delay before a repositioned selection commits")
	flags.BoolVar(&f.vim, "vim", defaults.VimKeys, "enable hjkl navigation")
}

// apply copies every flag the user set onto cfg.
func (f *selectorFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("loop") {
		cfg.Loop = f.loop
	}
	if flags.Changed("replication") {
		cfg.ReplicationFactor = f.replication
	}
	if flags.Changed("item-height") {
		cfg.ItemHeight = f.itemHeight
	}
	if flags.Changed("rows") {
		cfg.ViewportRows = f.rows
	}
	if flags.Changed("commit-delay") {
		cfg.CommitDelayMS = int(f.commitDelay / time.Millisecond)
	}
	if flags.Changed("vim") {
		cfg.VimKeys = f.vim
	}
	return cfg.Validate()
}

// loadConfig reads the config file and applies flag overrides.
func (f *selectorFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	if err := f.apply(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runPicker shows the picker and prints the confirmed value to stdout. The
// picker itself draws on stderr so the value can be captured by a shell.
func runPicker(cmd *cobra.Command, cfg *config.Config, opts ui.PickerOptions, extra ...tea.ProgramOption) error {
	opts.Selector = cfg.Selector()
	opts.VimKeys = cfg.VimKeys
	opts.Logger = logger.L.With("picker", string(opts.Kind))

	model, err := ui.NewPickerModel(opts)
	if err != nil {
		return err
	}

	programOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(cmd.ErrOrStderr()),
	}, extra...)
	final, err := runProgram(model, programOpts...)
	if err != nil {
		return fmt.Errorf("tui error: %w", err)
	}

	picker, ok := final.(ui.PickerModel)
	if !ok {
		return fmt.Errorf("unexpected model %T", final)
	}
	value, confirmed := picker.Result()
	if !confirmed {
		return ErrCancelled
	}
	logger.L.Info("value selected", "kind", string(opts.Kind), "value", value)
	_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
	return err
}

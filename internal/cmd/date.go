package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/wheelpick/internal/ui"
)

// DateCmd returns the `wheelpick date` command.
func DateCmd() *cobra.Command {
	var (
		sel      selectorFlags
		initial  string
		title    string
		fromYear int
		toYear   int
	)
	cmd := &cobra.Command{
		Use:   "date",
		Short: "Pick a date from day, month and year wheels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sel.loadConfig(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			if initial != "" {
				start, err = time.ParseInLocation("2006-01-02", initial, time.Local)
				if err != nil {
					return fmt.Errorf("parse --initial: %w", err)
				}
			}
			if !cmd.Flags().Changed("from") {
				fromYear = start.Year() - cfg.YearSpan
			}
			if !cmd.Flags().Changed("to") {
				toYear = start.Year() + cfg.YearSpan
			}
			if start.Year() < fromYear || start.Year() > toYear {
				return fmt.Errorf("initial year %d outside %d..%d", start.Year(), fromYear, toYear)
			}

			return runPicker(cmd, cfg, ui.PickerOptions{
				Kind:     ui.KindDate,
				Title:    title,
				Initial:  start,
				YearFrom: fromYear,
				YearTo:   toYear,
			})
		},
	}
	cmd.Flags().StringVar(&initial, "initial", "", "starting date (YYYY-MM-DD), default today")
	cmd.Flags().StringVar(&title, "title", "", "picker title")
	cmd.Flags().IntVar(&fromYear, "from", 0, "first selectable year")
	cmd.Flags().IntVar(&toYear, "to", 0, "last selectable year")
	sel.register(cmd)
	return cmd
}

package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gravitrone/wheelpick/internal/ui"
)

// TimeCmd returns the `wheelpick time` command.
func TimeCmd() *cobra.Command {
	var (
		sel     selectorFlags
		initial string
		title   string
		seconds bool
	)
	cmd := &cobra.Command{
		Use:   "time",
		Short: "Pick a time of day from hour and minute wheels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := sel.loadConfig(cmd)
			if err != nil {
				return err
			}

			start := time.Now()
			if initial != "" {
				start, err = parseClock(initial)
				if err != nil {
					return err
				}
			}

			return runPicker(cmd, cfg, ui.PickerOptions{
				Kind:    ui.KindTime,
				Title:   title,
				Initial: start,
				Seconds: seconds,
			})
		},
	}
	cmd.Flags().StringVar(&initial, "initial", "", "starting time (HH:MM or HH:MM:SS), default now")
	cmd.Flags().StringVar(&title, "title", "", "picker title")
	cmd.Flags().BoolVarP(&seconds, "seconds", "s", false, "add a seconds wheel")
	sel.register(cmd)
	return cmd
}

func parseClock(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("parse --initial: %q is not HH:MM or HH:MM:SS", s)
}

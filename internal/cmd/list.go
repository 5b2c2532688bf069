package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gravitrone/wheelpick/internal/ui"
)

// ListCmd returns the `wheelpick list` command.
func ListCmd() *cobra.Command {
	var (
		sel   selectorFlags
		index int
		title string
	)
	cmd := &cobra.Command{
		Use:   "list [item...]",
		Short: "Pick one item from a looping wheel",
		Long:  "Pick one item from a looping wheel. Items come from the arguments, or one per line on stdin when none are given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sel.loadConfig(cmd)
			if err != nil {
				return err
			}

			items := args
			var extra []tea.ProgramOption
			if len(items) == 0 {
				items, err = readItems(cmd.InOrStdin())
				if err != nil {
					return err
				}
				// stdin was consumed, keyboard input comes from the terminal
				extra = append(extra, tea.WithInputTTY())
			}
			if len(items) == 0 {
				return errors.New("no items to pick from")
			}

			return runPicker(cmd, cfg, ui.PickerOptions{
				Kind:  ui.KindList,
				Title: title,
				Items: items,
				Index: index,
			}, extra...)
		},
	}
	cmd.Flags().IntVarP(&index, "index", "i", 0, "initially selected item")
	cmd.Flags().StringVar(&title, "title", "", "picker title")
	sel.register(cmd)
	return cmd
}

func readItems(r io.Reader) ([]string, error) {
	var items []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		items = append(items, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	return items, nil
}

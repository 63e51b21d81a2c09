package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

func init() {
	rootCmd.AddCommand(conflictsCmd)
}

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Show key combinations bound more than once",
	Long: `Show every key combination that appears in multiple bindings. Hyprland
keeps the first binding and silently ignores the rest, so duplicates are
usually mistakes.

	Examples:
	  hypr-keybind-manager conflicts
	  hypr-keybind-manager conflicts --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}

		conflicts := ctrl.Conflicts()

		if output.IsStructured() {
			type conflictRow struct {
				Combo    string   `json:"combo" yaml:"combo"`
				Count    int      `json:"count" yaml:"count"`
				Bindings []string `json:"bindings" yaml:"bindings"`
				Lines    []int    `json:"lines" yaml:"lines"`
			}
			rows := make([]conflictRow, 0, len(conflicts))
			for _, c := range conflicts {
				row := conflictRow{Combo: c.Combo.String(), Count: len(c.Bindings)}
				for _, b := range c.Bindings {
					row.Bindings = append(row.Bindings, b.String())
					row.Lines = append(row.Lines, b.Line)
				}
				rows = append(rows, row)
			}
			return output.OutputStructured(rows)
		}

		if len(conflicts) == 0 {
			fmt.Println("No conflicts found.")
			return nil
		}

		for _, c := range conflicts {
			fmt.Printf("%s is bound %d times:\n", c.Combo.String(), len(c.Bindings))
			rows := make([][]string, 0, len(c.Bindings))
			for _, b := range c.Bindings {
				rows = append(rows, []string{strconv.Itoa(b.Line), b.Dispatcher, b.Args})
			}
			output.OutputTable([]string{"LINE", "DISPATCHER", "ARGS"}, rows)
			fmt.Println()
		}
		return fmt.Errorf("%d conflicting key combinations", len(conflicts))
	},
}

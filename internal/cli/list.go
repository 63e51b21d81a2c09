package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "List keybindings from the config",
	Long: `List all keybindings parsed from the Hyprland config. An optional query
filters by key combination, dispatcher, or arguments (case-insensitive).

	Examples:
	  hypr-keybind-manager list
	  hypr-keybind-manager list firefox
	  hypr-keybind-manager list SUPER+SHIFT --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := newController()
		if err != nil {
			return err
		}

		query := ""
		if len(args) == 1 {
			query = args[0]
		}
		bindings := ctrl.Filter(query)

		if output.IsStructured() {
			type bindingRow struct {
				Combo      string `json:"combo" yaml:"combo"`
				Type       string `json:"type" yaml:"type"`
				Dispatcher string `json:"dispatcher" yaml:"dispatcher"`
				Args       string `json:"args,omitempty" yaml:"args,omitempty"`
				Line       int    `json:"line" yaml:"line"`
			}
			rows := make([]bindingRow, 0, len(bindings))
			for _, b := range bindings {
				rows = append(rows, bindingRow{
					Combo:      b.Combo.String(),
					Type:       b.Type.String(),
					Dispatcher: b.Dispatcher,
					Args:       b.Args,
					Line:       b.Line,
				})
			}
			return output.OutputStructured(rows)
		}

		if len(bindings) == 0 {
			fmt.Println("No keybindings found.")
			return nil
		}

		rows := make([][]string, 0, len(bindings))
		for _, b := range bindings {
			rows = append(rows, []string{
				b.Combo.String(),
				b.Type.String(),
				b.Dispatcher,
				b.Args,
				strconv.Itoa(b.Line),
			})
		}
		output.OutputTable([]string{"COMBO", "TYPE", "DISPATCHER", "ARGS", "LINE"}, rows)

		if skipped := ctrl.Skipped(); len(skipped) > 0 {
			fmt.Printf("\n%d lines skipped during parsing (run validate for details)\n", len(skipped))
		}
		return nil
	},
}

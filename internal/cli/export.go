package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export keybindings as a standalone config fragment",
	Long: `Write all keybindings to a new file as Hyprland bind lines. The export
can be sourced from another config or imported on another machine.

	Examples:
	  hypr-keybind-manager export ~/keybindings.conf`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		ctrl, err := newController()
		if err != nil {
			return err
		}
		if err := ctrl.ExportTo(path); err != nil {
			return err
		}

		count := len(ctrl.Bindings())
		if output.IsStructured() {
			return output.OutputStructured(map[string]any{"exported": count, "path": path})
		}
		fmt.Printf("Exported %d keybindings to %s\n", count, path)
		return nil
	},
}

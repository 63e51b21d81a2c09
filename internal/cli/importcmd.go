package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/controller"
	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

var flagImportMerge bool

func init() {
	importCmd.Flags().BoolVarP(&flagImportMerge, "merge", "m", false, "keep current bindings; add only unbound key combinations")

	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import keybindings from another config file",
	Long: `Parse another Hyprland config and bring its keybindings into the managed
config. The default replaces the current bindings; --merge keeps them and
adds only imported bindings whose key combination is free.

A backup is taken before the config is rewritten.

	Examples:
	  hypr-keybind-manager import ~/keybindings.conf
	  hypr-keybind-manager import ~/laptop-bindings.conf --merge`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]

		ctrl, err := newController()
		if err != nil {
			return err
		}

		mode := controller.ImportReplace
		if flagImportMerge {
			mode = controller.ImportMerge
		}
		if err := ctrl.ImportFrom(path, mode); err != nil {
			return err
		}

		count := len(ctrl.Bindings())
		if output.IsStructured() {
			return output.OutputStructured(map[string]any{"bindings": count, "from": path})
		}
		fmt.Printf("Config now has %d keybindings.\n", count)
		return nil
	},
}

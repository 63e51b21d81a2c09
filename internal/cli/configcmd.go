package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/output"
	"github.com/tidynest/hypr-keybind-manager/internal/settings"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Get and set tool settings",
	Long: `Read and write hypr-keybind-manager's own settings (not the Hyprland
config). Keys use dot notation, e.g. backups.max_backups.

	Examples:
	  hypr-keybind-manager config get backups.max_backups
	  hypr-keybind-manager config set backups.max_backups 20
	  hypr-keybind-manager config set danger.block_level dangerous`,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the effective value of a settings key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := args[0]

		val, ok := settings.GetValue(cliSettings, key)
		if !ok {
			return fmt.Errorf("unknown settings key %q", key)
		}

		if output.IsStructured() {
			return output.OutputStructured(map[string]any{key: val})
		}
		fmt.Println(val)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write a settings key to the user settings file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, raw := args[0], args[1]

		val, err := settings.ParseValue(key, raw)
		if err != nil {
			return err
		}

		path := flagSettingsPath
		if path == "" {
			path = settings.UserSettingsPath()
		}
		if err := settings.WriteValue(path, key, val); err != nil {
			return err
		}

		if output.IsStructured() {
			return output.OutputStructured(map[string]any{key: val, "file": path})
		}
		fmt.Printf("Set %s = %v in %s\n", key, val, path)
		return nil
	},
}

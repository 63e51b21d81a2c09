package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

var flagRestoreNoSafety bool

func init() {
	restoreCmd.Flags().BoolVar(&flagRestoreNoSafety, "no-safety-backup", false, "skip backing up the current config before restoring")

	rootCmd.AddCommand(restoreCmd)
}

var restoreCmd = &cobra.Command{
	Use:   "restore <backup-name>",
	Short: "Restore the config from a backup",
	Long: `Replace the current config with a backup from the backups directory.
By default the current config is backed up first, so a restore can itself
be undone.

	Examples:
	  hypr-keybind-manager backups list
	  hypr-keybind-manager restore hyprland.conf.2025-01-02_030405`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		m, err := newManager()
		if err != nil {
			return err
		}

		safety := cliSettings.Backups.SafetyBackupOnRestore && !flagRestoreNoSafety
		if err := m.RestoreBackup(name, safety); err != nil {
			return err
		}

		if output.IsStructured() {
			return output.OutputStructured(map[string]any{
				"restored":      name,
				"safety_backup": safety,
			})
		}
		fmt.Printf("Restored config from %s\n", name)
		return nil
	},
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/output"
)

var flagPruneKeep int

func init() {
	backupsPruneCmd.Flags().IntVarP(&flagPruneKeep, "keep", "k", 0, "number of newest backups to keep (default from settings)")

	backupsCmd.AddCommand(backupsListCmd)
	backupsCmd.AddCommand(backupsPruneCmd)
	rootCmd.AddCommand(backupsCmd)
}

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "Manage config backups",
}

var backupsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}
		backups, err := m.ListBackups()
		if err != nil {
			return err
		}

		if output.IsStructured() {
			return output.OutputStructured(backups)
		}

		if len(backups) == 0 {
			fmt.Println("No backups found.")
			return nil
		}
		rows := make([][]string, 0, len(backups))
		for _, b := range backups {
			rows = append(rows, []string{
				b.Name,
				b.Timestamp.Format("2006-01-02 15:04:05"),
				strconv.FormatInt(b.Size, 10),
			})
		}
		output.OutputTable([]string{"NAME", "CREATED", "BYTES"}, rows)
		return nil
	},
}

var backupsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old backups, keeping the newest",
	Long: `Delete backups beyond the retention count. The count comes from
backups.max_backups in settings unless overridden with --keep.

	Examples:
	  hypr-keybind-manager backups prune
	  hypr-keybind-manager backups prune --keep 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager()
		if err != nil {
			return err
		}

		keep := flagPruneKeep
		if keep <= 0 {
			keep = cliSettings.Backups.MaxBackups
		}
		if keep <= 0 {
			return fmt.Errorf("retention count must be positive; set --keep or backups.max_backups")
		}

		removed, err := m.CleanupBackups(keep)
		if err != nil {
			return err
		}

		if output.IsStructured() {
			return output.OutputStructured(map[string]int{"removed": removed, "kept": keep})
		}
		fmt.Printf("Removed %d backups, keeping the newest %d.\n", removed, keep)
		return nil
	},
}

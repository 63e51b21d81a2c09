// Package cli implements the hypr-keybind-manager command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tidynest/hypr-keybind-manager/internal/config"
	"github.com/tidynest/hypr-keybind-manager/internal/controller"
	"github.com/tidynest/hypr-keybind-manager/internal/danger"
	"github.com/tidynest/hypr-keybind-manager/internal/output"
	"github.com/tidynest/hypr-keybind-manager/internal/settings"
	"github.com/tidynest/hypr-keybind-manager/internal/utils"
)

var (
	flagConfigPath   string
	flagSettingsPath string
	flagFormat       string
	flagJSON         bool
	flagLogLevel     string
	flagColor        string

	// effective settings after precedence, set in PersistentPreRunE
	cliSettings settings.Settings
)

var rootCmd = &cobra.Command{
	Use:   "hypr-keybind-manager",
	Short: "Manage, validate, and back up Hyprland keybindings",
	Long: `hypr-keybind-manager parses Hyprland config files, detects keybinding
conflicts, validates bound commands against injection and known-dangerous
patterns, and persists changes with automatic backups.

The managed config file defaults to ~/.config/hypr/hyprland.conf and can
be overridden with --config or the HKM_CONFIG_PATH environment variable.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		overrides := map[string]any{}
		if cmd.Flags().Changed("config") {
			overrides["general.config_path"] = flagConfigPath
		}
		if cmd.Flags().Changed("log-level") {
			overrides["general.log_level"] = flagLogLevel
		}
		if cmd.Flags().Changed("format") {
			overrides["output.format"] = flagFormat
		}
		if flagJSON {
			overrides["output.format"] = "json"
		}
		if cmd.Flags().Changed("color") {
			overrides["output.color"] = flagColor
		}

		s, err := settings.Load(settings.LoadOptions{
			SettingsPath:  flagSettingsPath,
			FlagOverrides: overrides,
		})
		if err != nil {
			return err
		}
		cliSettings = s

		utils.SetDefaultLogger(utils.InitLogger(utils.LoggerOptions{
			Level:           s.General.LogLevel,
			Output:          os.Stderr,
			ReportTimestamp: false,
		}))
		output.SetOutputMode(s.Output.Format)
		output.SetColorMode(s.Output.Color)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfigPath, "config", "c", "", "Hyprland config file to manage")
	rootCmd.PersistentFlags().StringVar(&flagSettingsPath, "settings", "", "tool settings file (default ~/.config/hypr-keybind-manager/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "shorthand for --format json")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagColor, "color", "", "color mode: auto, always, never")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if output.IsStructured() {
			_ = output.OutputJSONError(err, 1)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		return 1
	}
	return 0
}

// newManager opens the persistence manager for the configured config file.
func newManager() (*config.Manager, error) {
	path := cliSettings.General.ConfigPath
	if path == "" {
		return nil, fmt.Errorf("no Hyprland config path configured; use --config or HKM_CONFIG_PATH")
	}
	return config.NewManagerWithBackupDir(path, cliSettings.Backups.Dir)
}

// newValidator builds a validator with the risk policy from settings.
func newValidator() (*config.Validator, error) {
	blockLevel, err := danger.ParseLevel(cliSettings.Danger.BlockLevel)
	if err != nil {
		return nil, err
	}
	return config.NewValidatorWithPolicy(config.Policy{
		BlockLevel:     blockLevel,
		WarnSuspicious: cliSettings.Danger.WarnSuspicious,
	}), nil
}

// newController opens a manager and loads the config into a session.
func newController() (*controller.Controller, error) {
	m, err := newManager()
	if err != nil {
		return nil, err
	}
	v, err := newValidator()
	if err != nil {
		return nil, err
	}
	return controller.NewWithValidator(m, v)
}

package settings

import (
	"os"
	"path/filepath"
)

// DefaultSettings returns the built-in default configuration.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			ConfigPath: defaultHyprlandConfig(),
			LogLevel:   "info",
		},
		Backups: BackupSettings{
			Dir:                   "",
			MaxBackups:            10,
			SafetyBackupOnRestore: true,
		},
		Danger: DangerSettings{
			BlockLevel:     "dangerous",
			WarnSuspicious: true,
		},
		Output: OutputSettings{
			Format: "text",
			Color:  "auto",
		},
	}
}

// defaultHyprlandConfig resolves the conventional Hyprland config location,
// honoring XDG_CONFIG_HOME.
func defaultHyprlandConfig() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hypr", "hyprland.conf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hypr", "hyprland.conf")
}

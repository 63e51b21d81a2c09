// Package settings implements hierarchical tool configuration.
// Precedence: defaults < user (~/.config/hypr-keybind-manager/config.toml) < env (HKM_*) < flags.
package settings

// Settings is the top-level tool configuration structure.
type Settings struct {
	General GeneralSettings `toml:"general" mapstructure:"general"`
	Backups BackupSettings  `toml:"backups" mapstructure:"backups"`
	Danger  DangerSettings  `toml:"danger" mapstructure:"danger"`
	Output  OutputSettings  `toml:"output" mapstructure:"output"`
}

// GeneralSettings holds core behavior knobs.
type GeneralSettings struct {
	// ConfigPath is the Hyprland config file to manage.
	ConfigPath string `toml:"config_path" mapstructure:"config_path"`
	LogLevel   string `toml:"log_level" mapstructure:"log_level"` // debug | info | warn | error
}

// BackupSettings controls automatic backup behavior.
type BackupSettings struct {
	// Dir overrides the backup directory. Empty means a backups/
	// directory next to the managed config file.
	Dir string `toml:"dir" mapstructure:"dir"`
	// MaxBackups is the count kept by cleanup. Zero disables cleanup.
	MaxBackups int `toml:"max_backups" mapstructure:"max_backups"`
	// SafetyBackupOnRestore backs up the current config before any restore.
	SafetyBackupOnRestore bool `toml:"safety_backup_on_restore" mapstructure:"safety_backup_on_restore"`
}

// DangerSettings controls the command risk checks applied to exec bindings.
type DangerSettings struct {
	// BlockLevel is the lowest risk tier that blocks a write.
	// One of suspicious | dangerous | critical.
	BlockLevel string `toml:"block_level" mapstructure:"block_level"`
	// WarnSuspicious reports suspicious commands without blocking.
	WarnSuspicious bool `toml:"warn_suspicious" mapstructure:"warn_suspicious"`
}

// OutputSettings controls rendering of command output.
type OutputSettings struct {
	Format string `toml:"format" mapstructure:"format"` // text | json | yaml
	Color  string `toml:"color" mapstructure:"color"`   // auto | always | never
}

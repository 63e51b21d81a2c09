package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
)

// LoadOptions controls configuration loading.
type LoadOptions struct {
	// SettingsPath overrides the user settings file path if provided.
	SettingsPath string
	// FlagOverrides are highest-priority overrides from CLI flags (dot-notated keys).
	FlagOverrides map[string]any
}

// Load returns the effective settings after applying precedence:
// defaults < user file < env (HKM_*) < flags.
func Load(opts LoadOptions) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	path := opts.SettingsPath
	if path == "" {
		path = UserSettingsPath()
	}
	if err := mergeSettingsFile(v, path); err != nil {
		return Settings{}, err
	}
	if err := applyEnvOverrides(v); err != nil {
		return Settings{}, err
	}
	applyFlagOverrides(v, opts.FlagOverrides)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := Validate(s); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// setDefaults seeds viper with built-in defaults.
func setDefaults(v *viper.Viper) {
	def := DefaultSettings()

	v.SetDefault("general.config_path", def.General.ConfigPath)
	v.SetDefault("general.log_level", def.General.LogLevel)

	v.SetDefault("backups.dir", def.Backups.Dir)
	v.SetDefault("backups.max_backups", def.Backups.MaxBackups)
	v.SetDefault("backups.safety_backup_on_restore", def.Backups.SafetyBackupOnRestore)

	v.SetDefault("danger.block_level", def.Danger.BlockLevel)
	v.SetDefault("danger.warn_suspicious", def.Danger.WarnSuspicious)

	v.SetDefault("output.format", def.Output.Format)
	v.SetDefault("output.color", def.Output.Color)
}

// mergeSettingsFile merges the TOML settings file if it exists.
func mergeSettingsFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat settings %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("settings path %s is a directory", path)
	}
	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("merge settings %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides reads HKM_* env vars and applies them.
func applyEnvOverrides(v *viper.Viper) error {
	for _, binding := range envBindings {
		val := os.Getenv(binding.Env)
		if val == "" {
			continue
		}
		parsed, err := parseValueByKind(val, binding.Kind)
		if err != nil {
			return fmt.Errorf("env %s: %w", binding.Env, err)
		}
		v.Set(binding.Key, parsed)
	}
	return nil
}

// applyFlagOverrides applies CLI overrides as highest-precedence values.
func applyFlagOverrides(v *viper.Viper, overrides map[string]any) {
	for k, val := range overrides {
		v.Set(k, val)
	}
}

// UserSettingsPath returns the user settings file path.
func UserSettingsPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "hypr-keybind-manager", "config.toml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "hypr-keybind-manager", "config.toml")
}

// ParseValue parses a raw string into the expected type for a given settings key.
func ParseValue(key, raw string) (any, error) {
	kind, ok := keyKinds[key]
	if !ok {
		return nil, fmt.Errorf("unsupported key %q", key)
	}
	return parseValueByKind(raw, kind)
}

// GetValue retrieves a dot-notated value from the Settings.
func GetValue(s Settings, key string) (any, bool) {
	switch key {
	case "general.config_path":
		return s.General.ConfigPath, true
	case "general.log_level":
		return s.General.LogLevel, true
	case "backups.dir":
		return s.Backups.Dir, true
	case "backups.max_backups":
		return s.Backups.MaxBackups, true
	case "backups.safety_backup_on_restore":
		return s.Backups.SafetyBackupOnRestore, true
	case "danger.block_level":
		return s.Danger.BlockLevel, true
	case "danger.warn_suspicious":
		return s.Danger.WarnSuspicious, true
	case "output.format":
		return s.Output.Format, true
	case "output.color":
		return s.Output.Color, true
	default:
		return nil, false
	}
}

// WriteValue sets a single key/value into the specified TOML settings file (creating it if needed).
func WriteValue(path, key string, value any) error {
	if path == "" {
		return fmt.Errorf("settings path is empty")
	}
	var existing map[string]any
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &existing); err != nil {
			return fmt.Errorf("decode settings: %w", err)
		}
		if existing == nil {
			existing = map[string]any{}
		}
	} else {
		existing = map[string]any{}
	}

	if err := setNested(existing, key, value); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("create settings %s: %w", path, err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	enc.Indent = "  "
	if err := enc.Encode(existing); err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return nil
}

func setNested(m map[string]any, key string, value any) error {
	parts := strings.Split(key, ".")
	if len(parts) == 0 {
		return fmt.Errorf("invalid key %q", key)
	}
	cur := m
	for i, p := range parts {
		if i == len(parts)-1 {
			cur[p] = value
			return nil
		}
		next, ok := cur[p]
		if !ok {
			child := map[string]any{}
			cur[p] = child
			cur = child
			continue
		}
		childMap, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("cannot set %s: %s is not a table", key, strings.Join(parts[:i+1], "."))
		}
		cur = childMap
	}
	return nil
}

// Helpers for env + parsing ---------------------------------------------------

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
)

var keyKinds = map[string]valueKind{
	"general.config_path":              kindString,
	"general.log_level":                kindString,
	"backups.dir":                      kindString,
	"backups.max_backups":              kindInt,
	"backups.safety_backup_on_restore": kindBool,
	"danger.block_level":               kindString,
	"danger.warn_suspicious":           kindBool,
	"output.format":                    kindString,
	"output.color":                     kindString,
}

var envBindings = []struct {
	Env  string
	Key  string
	Kind valueKind
}{
	{"HKM_CONFIG_PATH", "general.config_path", kindString},
	{"HKM_LOG_LEVEL", "general.log_level", kindString},
	{"HKM_BACKUP_DIR", "backups.dir", kindString},
	{"HKM_MAX_BACKUPS", "backups.max_backups", kindInt},
	{"HKM_SAFETY_BACKUP_ON_RESTORE", "backups.safety_backup_on_restore", kindBool},
	{"HKM_BLOCK_LEVEL", "danger.block_level", kindString},
	{"HKM_WARN_SUSPICIOUS", "danger.warn_suspicious", kindBool},
	{"HKM_OUTPUT_FORMAT", "output.format", kindString},
	{"HKM_OUTPUT_COLOR", "output.color", kindString},
}

func parseValueByKind(raw string, kind valueKind) (any, error) {
	switch kind {
	case kindString:
		return raw, nil
	case kindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("expected boolean: %w", err)
		}
		return v, nil
	case kindInt:
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("expected integer: %w", err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unsupported value kind")
	}
}

package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(LoadOptions{SettingsPath: filepath.Join(t.TempDir(), "missing.toml")})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if s.General.LogLevel != "info" {
		t.Fatalf("default log level %q", s.General.LogLevel)
	}
	if s.Backups.MaxBackups != 10 {
		t.Fatalf("default max backups %d", s.Backups.MaxBackups)
	}
	if !s.Backups.SafetyBackupOnRestore {
		t.Fatalf("safety backup should default on")
	}
	if s.Danger.BlockLevel != "dangerous" {
		t.Fatalf("default block level %q", s.Danger.BlockLevel)
	}
	if s.Output.Format != "text" || s.Output.Color != "auto" {
		t.Fatalf("default output %q/%q", s.Output.Format, s.Output.Color)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[backups]
max_backups = 3

[output]
format = "json"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	s, err := Load(LoadOptions{SettingsPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Backups.MaxBackups != 3 {
		t.Fatalf("file value not applied: %d", s.Backups.MaxBackups)
	}
	if s.Output.Format != "json" {
		t.Fatalf("file value not applied: %q", s.Output.Format)
	}
	// Untouched keys keep defaults.
	if s.Danger.BlockLevel != "dangerous" {
		t.Fatalf("unrelated default lost: %q", s.Danger.BlockLevel)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\nlog_level = \"warn\"\n"), 0o600); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	t.Setenv("HKM_LOG_LEVEL", "debug")
	t.Setenv("HKM_MAX_BACKUPS", "7")

	s, err := Load(LoadOptions{SettingsPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.General.LogLevel != "debug" {
		t.Fatalf("env did not override file: %q", s.General.LogLevel)
	}
	if s.Backups.MaxBackups != 7 {
		t.Fatalf("env int not applied: %d", s.Backups.MaxBackups)
	}
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("HKM_LOG_LEVEL", "debug")

	s, err := Load(LoadOptions{
		SettingsPath:  filepath.Join(t.TempDir(), "missing.toml"),
		FlagOverrides: map[string]any{"general.log_level": "error"},
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.General.LogLevel != "error" {
		t.Fatalf("flag did not win: %q", s.General.LogLevel)
	}
}

func TestLoad_InvalidEnvValue(t *testing.T) {
	t.Setenv("HKM_MAX_BACKUPS", "not-a-number")

	_, err := Load(LoadOptions{SettingsPath: filepath.Join(t.TempDir(), "missing.toml")})
	if err == nil || !strings.Contains(err.Error(), "HKM_MAX_BACKUPS") {
		t.Fatalf("expected env parse error, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	good := DefaultSettings()
	if err := Validate(good); err != nil {
		t.Fatalf("default settings invalid: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"bad log level", func(s *Settings) { s.General.LogLevel = "verbose" }},
		{"negative backups", func(s *Settings) { s.Backups.MaxBackups = -1 }},
		{"bad block level", func(s *Settings) { s.Danger.BlockLevel = "extreme" }},
		{"bad format", func(s *Settings) { s.Output.Format = "xml" }},
		{"bad color", func(s *Settings) { s.Output.Color = "sometimes" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := DefaultSettings()
			tc.mutate(&s)
			if err := Validate(s); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestWriteValueAndGetValue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := WriteValue(path, "backups.max_backups", 20); err != nil {
		t.Fatalf("WriteValue: %v", err)
	}
	if err := WriteValue(path, "output.format", "yaml"); err != nil {
		t.Fatalf("WriteValue second key: %v", err)
	}

	s, err := Load(LoadOptions{SettingsPath: path})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.Backups.MaxBackups != 20 {
		t.Fatalf("written value not loaded: %d", s.Backups.MaxBackups)
	}
	if s.Output.Format != "yaml" {
		t.Fatalf("second written value lost: %q", s.Output.Format)
	}

	got, ok := GetValue(s, "backups.max_backups")
	if !ok || got != 20 {
		t.Fatalf("GetValue = %v, %v", got, ok)
	}
	if _, ok := GetValue(s, "nope.nope"); ok {
		t.Fatalf("unknown key should not resolve")
	}
}

func TestParseValue(t *testing.T) {
	if v, err := ParseValue("backups.max_backups", "5"); err != nil || v != 5 {
		t.Fatalf("int parse: %v %v", v, err)
	}
	if v, err := ParseValue("danger.warn_suspicious", "false"); err != nil || v != false {
		t.Fatalf("bool parse: %v %v", v, err)
	}
	if _, err := ParseValue("backups.max_backups", "x"); err == nil {
		t.Fatalf("bad int should error")
	}
	if _, err := ParseValue("unknown.key", "x"); err == nil {
		t.Fatalf("unknown key should error")
	}
}

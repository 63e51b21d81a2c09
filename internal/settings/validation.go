package settings

import (
	"fmt"
	"strings"
)

// Validate checks the settings for semantic errors.
func Validate(s Settings) error {
	var errs []string

	if !oneOf(s.General.LogLevel, "debug", "info", "warn", "error") {
		errs = append(errs, "general.log_level must be one of debug|info|warn|error")
	}
	if s.Backups.MaxBackups < 0 {
		errs = append(errs, "backups.max_backups cannot be negative")
	}
	if !oneOf(s.Danger.BlockLevel, "suspicious", "dangerous", "critical") {
		errs = append(errs, "danger.block_level must be one of suspicious|dangerous|critical")
	}
	if !oneOf(s.Output.Format, "text", "json", "yaml") {
		errs = append(errs, "output.format must be one of text|json|yaml")
	}
	if !oneOf(s.Output.Color, "auto", "always", "never") {
		errs = append(errs, "output.color must be one of auto|always|never")
	}

	if len(errs) > 0 {
		return fmt.Errorf("settings validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func oneOf(val string, options ...string) bool {
	for _, opt := range options {
		if val == opt {
			return true
		}
	}
	return false
}

// Package config manages the Hyprland config file: validated writes,
// timestamped backups, and crash-safe persistence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/tidynest/hypr-keybind-manager/internal/core"
	"github.com/tidynest/hypr-keybind-manager/internal/utils"
)

// backupTimeFormat is the timestamp embedded in backup filenames,
// e.g. hyprland.conf.2025-01-02_030405.
const backupTimeFormat = "2006-01-02_150405"

// renameFile is swapped in tests to simulate a crash between the temp
// write and the atomic rename.
var renameFile = os.Rename

// BackupError wraps failures while creating, listing, or restoring backups.
type BackupError struct {
	Op   string
	Path string
	Err  error
}

func (e *BackupError) Error() string {
	return fmt.Sprintf("backup %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *BackupError) Unwrap() error { return e.Err }

// WriteError wraps failures while persisting the config file.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// BackupInfo describes one backup file on disk.
type BackupInfo struct {
	Name      string    `json:"name" yaml:"name"`
	Path      string    `json:"path" yaml:"path"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Size      int64     `json:"size" yaml:"size"`
}

// Manager owns one Hyprland config file and its backup directory.
type Manager struct {
	configPath string
	backupDir  string
}

// NewManager opens a manager for the given config file. The backups
// directory is created next to the config file.
func NewManager(configPath string) (*Manager, error) {
	return NewManagerWithBackupDir(configPath, "")
}

// NewManagerWithBackupDir opens a manager with an explicit backup
// directory. An empty backupDir means backups/ next to the config file.
func NewManagerWithBackupDir(configPath, backupDir string) (*Manager, error) {
	info, err := os.Lstat(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, configPath)
		}
		return nil, fmt.Errorf("stat config %s: %w", configPath, err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		// A symlinked config still works, but the atomic rename replaces
		// the link with a regular file.
		utils.Warn("config file is a symlink; writes will replace the link", "path", configPath)
	}

	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(configPath), "backups")
	}
	if err := os.MkdirAll(backupDir, 0o700); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBackupDirNotWritable, backupDir, err)
	}

	return &Manager{configPath: configPath, backupDir: backupDir}, nil
}

// ConfigPath returns the managed config file path.
func (m *Manager) ConfigPath() string { return m.configPath }

// BackupDir returns the backup directory path.
func (m *Manager) BackupDir() string { return m.backupDir }

// Read returns the current config file contents.
func (m *Manager) Read() (string, error) {
	data, err := os.ReadFile(m.configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, m.configPath)
		}
		return "", fmt.Errorf("read config %s: %w", m.configPath, err)
	}
	return string(data), nil
}

// CreateBackup copies the current config into the backup directory under a
// timestamped name and returns the backup's metadata.
func (m *Manager) CreateBackup() (BackupInfo, error) {
	content, err := m.Read()
	if err != nil {
		return BackupInfo{}, &BackupError{Op: "create", Path: m.configPath, Err: err}
	}

	base := filepath.Base(m.configPath)
	stamp := time.Now().Format(backupTimeFormat)
	name := base + "." + stamp
	path := filepath.Join(m.backupDir, name)

	// Multiple backups inside one second get a numeric suffix rather than
	// clobbering each other.
	for n := 1; ; n++ {
		if _, err := os.Lstat(path); errors.Is(err, os.ErrNotExist) {
			break
		}
		name = fmt.Sprintf("%s.%s-%d", base, stamp, n)
		path = filepath.Join(m.backupDir, name)
	}

	if err := writeFileAtomic(path, content, 0o600); err != nil {
		return BackupInfo{}, &BackupError{Op: "create", Path: path, Err: err}
	}

	info, err := os.Stat(path)
	if err != nil {
		return BackupInfo{}, &BackupError{Op: "create", Path: path, Err: err}
	}
	ts, _ := parseBackupTimestamp(name, base)
	utils.Debug("created backup", "name", name, "size", info.Size())
	return BackupInfo{Name: name, Path: path, Timestamp: ts, Size: info.Size()}, nil
}

// ListBackups returns backups for the managed config, newest first. Files
// whose names do not carry a parseable timestamp are skipped.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if err != nil {
		return nil, &BackupError{Op: "list", Path: m.backupDir, Err: err}
	}

	base := filepath.Base(m.configPath)
	var backups []BackupInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, ok := parseBackupTimestamp(entry.Name(), base)
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Name:      entry.Name(),
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].Name > backups[j].Name
	})
	return backups, nil
}

// CleanupBackups removes all but the newest keep backups and returns how
// many were deleted. keep <= 0 removes nothing.
func (m *Manager) CleanupBackups(keep int) (int, error) {
	if keep <= 0 {
		return 0, nil
	}
	backups, err := m.ListBackups()
	if err != nil {
		return 0, err
	}
	if len(backups) <= keep {
		return 0, nil
	}

	removed := 0
	for _, b := range backups[keep:] {
		if err := os.Remove(b.Path); err != nil {
			return removed, &BackupError{Op: "cleanup", Path: b.Path, Err: err}
		}
		removed++
	}
	utils.Info("pruned old backups", "removed", removed, "kept", keep)
	return removed, nil
}

// RestoreBackup replaces the current config with the named backup. When
// safetyBackup is true the current config is backed up first, so a bad
// restore is itself reversible.
func (m *Manager) RestoreBackup(name string, safetyBackup bool) error {
	path := filepath.Join(m.backupDir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, name)
		}
		return &BackupError{Op: "restore", Path: path, Err: err}
	}

	if safetyBackup {
		if _, err := m.CreateBackup(); err != nil {
			return err
		}
	}

	if err := writeFileAtomic(m.configPath, string(data), m.configMode()); err != nil {
		return &WriteError{Path: m.configPath, Err: err}
	}
	utils.Info("restored config from backup", "backup", name)
	return nil
}

// DeleteBackup removes the named backup file.
func (m *Manager) DeleteBackup(name string) error {
	path := filepath.Join(m.backupDir, name)
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrBackupNotFound, name)
		}
		return &BackupError{Op: "delete", Path: path, Err: err}
	}
	return nil
}

// WriteContent persists new config content: backup first, then a
// crash-safe write of the full content.
func (m *Manager) WriteContent(content string) error {
	if _, err := m.CreateBackup(); err != nil {
		return err
	}
	if err := writeFileAtomic(m.configPath, content, m.configMode()); err != nil {
		return &WriteError{Path: m.configPath, Err: err}
	}
	return nil
}

// WriteBindings rewrites the binding lines of the config while preserving
// every other line, then persists the result.
func (m *Manager) WriteBindings(bindings []core.Keybinding) error {
	current, err := m.Read()
	if err != nil {
		return err
	}
	return m.WriteContent(RebuildConfig(current, bindings))
}

// ExportTo writes the bindings as a standalone config fragment at path.
// No backup is taken; the export target is not the managed file.
func (m *Manager) ExportTo(path string, bindings []core.Keybinding) error {
	var sb strings.Builder
	sb.WriteString("# Keybindings exported from " + filepath.Base(m.configPath) + "\n")
	sb.WriteString("# " + time.Now().Format(time.RFC3339) + "\n\n")
	for _, b := range bindings {
		sb.WriteString(FormatBinding(b))
		sb.WriteByte('\n')
	}
	if err := writeFileAtomic(path, sb.String(), 0o600); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// FormatBinding renders one binding as a Hyprland config line.
func FormatBinding(b core.Keybinding) string {
	return b.String()
}

// RebuildConfig replaces the binding lines in content with the given
// bindings. Non-binding lines (comments, variables, sections, unrelated
// settings) are preserved verbatim in their original positions; the new
// bindings are inserted where the first binding line was, or appended when
// the file had none.
func RebuildConfig(content string, bindings []core.Keybinding) string {
	lines := strings.Split(content, "\n")
	var out []string
	inserted := false

	for _, line := range lines {
		if core.IsBindLine(line) {
			if !inserted {
				for _, b := range bindings {
					out = append(out, FormatBinding(b))
				}
				inserted = true
			}
			continue
		}
		out = append(out, line)
	}

	if !inserted && len(bindings) > 0 {
		if len(out) > 0 && out[len(out)-1] != "" {
			out = append(out, "")
		}
		for _, b := range bindings {
			out = append(out, FormatBinding(b))
		}
		out = append(out, "")
	}

	return strings.Join(out, "\n")
}

// configMode returns the mode to preserve on rewrites, defaulting to 0600
// when the file cannot be statted.
func (m *Manager) configMode() os.FileMode {
	info, err := os.Stat(m.configPath)
	if err != nil {
		return 0o600
	}
	return info.Mode().Perm()
}

// writeFileAtomic writes content to path via a temp file in the same
// directory: write, fsync, rename. A crash at any point leaves either the
// old file or the new file, never a torn mix.
func writeFileAtomic(path, content string, mode os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	if err := renameFile(tmpPath, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}

	// Persist the rename itself. Best effort: some filesystems reject
	// fsync on directories.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}
	return nil
}

// parseBackupTimestamp extracts the timestamp from a backup filename of
// the form {base}.{timestamp} or {base}.{timestamp}-{n}.
func parseBackupTimestamp(name, base string) (time.Time, bool) {
	prefix := base + "."
	if !strings.HasPrefix(name, prefix) {
		return time.Time{}, false
	}
	rest := name[len(prefix):]
	if len(rest) < len(backupTimeFormat) {
		return time.Time{}, false
	}
	stamp := rest[:len(backupTimeFormat)]
	suffix := rest[len(backupTimeFormat):]
	if suffix != "" && !strings.HasPrefix(suffix, "-") {
		return time.Time{}, false
	}
	ts, err := time.ParseInLocation(backupTimeFormat, stamp, time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}

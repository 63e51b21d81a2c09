// Package controller owns a loaded config session: the parsed bindings,
// the conflict index, and the persistence manager behind them.
package controller

import (
	"fmt"
	"strings"
	"sync"

	"github.com/tidynest/hypr-keybind-manager/internal/config"
	"github.com/tidynest/hypr-keybind-manager/internal/core"
	"github.com/tidynest/hypr-keybind-manager/internal/utils"
)

// ImportMode selects how imported bindings combine with the current set.
type ImportMode int

const (
	// ImportReplace discards current bindings in favor of the imported set.
	ImportReplace ImportMode = iota
	// ImportMerge keeps current bindings and adds imported ones whose key
	// combination is not already taken.
	ImportMerge
)

// Controller is the session owner. All methods are safe for concurrent
// use; bindings and the conflict index are swapped together under one
// mutex so readers never observe them disagreeing.
type Controller struct {
	manager   *config.Manager
	validator *config.Validator

	mu       sync.RWMutex
	bindings []core.Keybinding
	detector *core.ConflictDetector
	skipped  []core.SkippedLine
}

// New builds a controller over the managed config file and loads it.
func New(manager *config.Manager) (*Controller, error) {
	return NewWithValidator(manager, config.NewValidator())
}

// NewWithValidator builds a controller using a caller-configured
// validator, for callers that set a non-default risk policy.
func NewWithValidator(manager *config.Manager, validator *config.Validator) (*Controller, error) {
	c := &Controller{
		manager:   manager,
		validator: validator,
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload reparses the config file and atomically swaps in the new
// bindings and conflict index.
func (c *Controller) Reload() error {
	content, err := c.manager.Read()
	if err != nil {
		return err
	}
	result := core.Parse(content, c.manager.ConfigPath())

	detector := core.NewConflictDetector()
	detector.AddAll(result.Bindings)

	c.mu.Lock()
	c.bindings = result.Bindings
	c.detector = detector
	c.skipped = result.Skipped
	c.mu.Unlock()

	utils.Debug("config loaded",
		"bindings", len(result.Bindings),
		"skipped", len(result.Skipped),
		"conflicts", len(detector.Conflicts()))
	return nil
}

// Bindings returns a copy of the current bindings.
func (c *Controller) Bindings() []core.Keybinding {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.Keybinding, len(c.bindings))
	copy(out, c.bindings)
	return out
}

// Skipped returns the parser's skipped lines from the last load.
func (c *Controller) Skipped() []core.SkippedLine {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]core.SkippedLine, len(c.skipped))
	copy(out, c.skipped)
	return out
}

// Conflicts returns all key combinations bound more than once.
func (c *Controller) Conflicts() []core.Conflict {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.detector.Conflicts()
}

// Filter returns bindings whose combo, dispatcher, or arguments contain
// the query, case-insensitive. An empty query returns everything.
func (c *Controller) Filter(query string) []core.Keybinding {
	if query == "" {
		return c.Bindings()
	}
	q := strings.ToLower(query)

	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []core.Keybinding
	for _, b := range c.bindings {
		if strings.Contains(strings.ToLower(b.Combo.String()), q) ||
			strings.Contains(strings.ToLower(b.Dispatcher), q) ||
			strings.Contains(strings.ToLower(b.Args), q) {
			out = append(out, b)
		}
	}
	return out
}

// Validate runs the full validation report over the current bindings.
func (c *Controller) Validate() config.Report {
	return c.validator.ValidateAll(c.Bindings())
}

// Add appends a new binding after validating it, persists, and reloads.
// The new binding must not error in validation; conflicts with existing
// bindings are allowed and surface via Conflicts.
func (c *Controller) Add(b core.Keybinding) error {
	if err := c.validateOne(b); err != nil {
		return err
	}
	bindings := c.Bindings()
	bindings = append(bindings, b)
	return c.persist(bindings)
}

// Update replaces the binding for combo with the new binding.
func (c *Controller) Update(combo core.KeyCombo, b core.Keybinding) error {
	if err := c.validateOne(b); err != nil {
		return err
	}
	bindings := c.Bindings()
	found := false
	for i := range bindings {
		if bindings[i].Combo == combo {
			bindings[i] = b
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no binding for %s", combo.String())
	}
	return c.persist(bindings)
}

// Delete removes all bindings for combo.
func (c *Controller) Delete(combo core.KeyCombo) error {
	bindings := c.Bindings()
	kept := bindings[:0]
	removed := 0
	for _, b := range bindings {
		if b.Combo == combo {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	if removed == 0 {
		return fmt.Errorf("no binding for %s", combo.String())
	}
	return c.persist(kept)
}

// ImportFrom parses another config file and brings its bindings in.
func (c *Controller) ImportFrom(path string, mode ImportMode) error {
	result, err := core.ParseFile(path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	var merged []core.Keybinding
	switch mode {
	case ImportReplace:
		merged = result.Bindings
	case ImportMerge:
		merged = c.Bindings()
		taken := make(map[core.KeyCombo]bool, len(merged))
		for _, b := range merged {
			taken[b.Combo] = true
		}
		for _, b := range result.Bindings {
			if !taken[b.Combo] {
				merged = append(merged, b)
				taken[b.Combo] = true
			}
		}
	default:
		return fmt.Errorf("unknown import mode %d", mode)
	}

	utils.Info("importing bindings", "from", path, "count", len(result.Bindings), "skipped", len(result.Skipped))
	return c.persist(merged)
}

// ExportTo writes the current bindings as a standalone config fragment.
func (c *Controller) ExportTo(path string) error {
	return c.manager.ExportTo(path, c.Bindings())
}

// ListBackups returns backups of the managed config, newest first.
func (c *Controller) ListBackups() ([]config.BackupInfo, error) {
	return c.manager.ListBackups()
}

// CleanupBackups prunes old backups, keeping the newest keep.
func (c *Controller) CleanupBackups(keep int) (int, error) {
	return c.manager.CleanupBackups(keep)
}

// RestoreBackup restores the named backup and reloads the session.
func (c *Controller) RestoreBackup(name string, safetyBackup bool) error {
	if err := c.manager.RestoreBackup(name, safetyBackup); err != nil {
		return err
	}
	return c.Reload()
}

// DeleteBackup removes the named backup file.
func (c *Controller) DeleteBackup(name string) error {
	return c.manager.DeleteBackup(name)
}

// validateOne refuses bindings with blocking issues before they reach disk.
func (c *Controller) validateOne(b core.Keybinding) error {
	issues, _ := c.validator.ValidateBinding(0, b)
	for _, issue := range issues {
		if issue.Severity == config.SeverityError {
			return fmt.Errorf("binding rejected: %s", issue.Message)
		}
	}
	return nil
}

// persist validates the full binding set, writes it through the manager,
// and reloads so the in-memory state always reflects what the file
// round-trips to. Nothing reaches disk while the report blocks.
func (c *Controller) persist(bindings []core.Keybinding) error {
	report := c.validator.ValidateAll(bindings)
	if report.HasBlocking() {
		return fmt.Errorf("%w: %s", config.ErrValidationBlocked, report.Summary())
	}
	if err := c.manager.WriteBindings(bindings); err != nil {
		return err
	}
	return c.Reload()
}

package config

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/tidynest/hypr-keybind-manager/internal/core"
	"github.com/tidynest/hypr-keybind-manager/internal/utils"
)

// Transaction is a single-use config change: Begin takes a backup
// immediately, Commit writes new content atomically, Rollback restores the
// begin-time backup. A transaction that committed or rolled back refuses
// further use.
type Transaction struct {
	id      string
	manager *Manager
	backup  BackupInfo
	done    bool
}

// Begin starts a transaction against the managed config. The backup taken
// here is the rollback point for the whole transaction.
func Begin(m *Manager) (*Transaction, error) {
	backup, err := m.CreateBackup()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	tx := &Transaction{
		id:      uuid.NewString(),
		manager: m,
		backup:  backup,
	}
	utils.Debug("transaction started", "tx", tx.id, "backup", backup.Name)
	return tx, nil
}

// ID returns the transaction identifier used in logs.
func (tx *Transaction) ID() string { return tx.id }

// BackupName returns the name of the backup taken at Begin.
func (tx *Transaction) BackupName() string { return tx.backup.Name }

// Commit writes content to the config file atomically and completes the
// transaction. A failed write leaves the transaction open so the caller
// can still Rollback.
func (tx *Transaction) Commit(content string) error {
	if tx.done {
		return ErrTransactionDone
	}
	if err := writeFileAtomic(tx.manager.configPath, content, tx.manager.configMode()); err != nil {
		return &WriteError{Path: tx.manager.configPath, Err: err}
	}
	tx.done = true
	utils.Debug("transaction committed", "tx", tx.id)
	return nil
}

// CommitValidated runs the full validation report over the bindings and
// commits the rebuilt config only when nothing blocks.
func (tx *Transaction) CommitValidated(v *Validator, bindings []core.Keybinding) error {
	if tx.done {
		return ErrTransactionDone
	}
	report := v.ValidateAll(bindings)
	if report.HasBlocking() {
		return fmt.Errorf("%w: %s", ErrValidationBlocked, report.Summary())
	}
	current, err := tx.manager.Read()
	if err != nil {
		return err
	}
	return tx.Commit(RebuildConfig(current, bindings))
}

// Rollback restores the config to the backup taken at Begin and completes
// the transaction.
func (tx *Transaction) Rollback() error {
	if tx.done {
		return ErrTransactionDone
	}
	if err := tx.manager.RestoreBackup(tx.backup.Name, false); err != nil {
		return fmt.Errorf("rollback transaction %s: %w", tx.id, err)
	}
	tx.done = true
	utils.Info("transaction rolled back", "tx", tx.id, "backup", tx.backup.Name)
	return nil
}

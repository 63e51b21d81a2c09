package config

import "errors"

// Sentinel errors for persistence operations. Callers match with errors.Is.
var (
	// ErrNotFound means the managed config file does not exist.
	ErrNotFound = errors.New("config file not found")

	// ErrBackupNotFound means the named backup does not exist.
	ErrBackupNotFound = errors.New("backup not found")

	// ErrBackupDirNotWritable means the backup directory could not be
	// created or written.
	ErrBackupDirNotWritable = errors.New("backup directory not writable")

	// ErrTransactionDone means Commit or Rollback was called on a
	// transaction that already completed.
	ErrTransactionDone = errors.New("transaction already completed")

	// ErrValidationBlocked means a write was refused because the bindings
	// failed validation.
	ErrValidationBlocked = errors.New("write blocked by validation")
)

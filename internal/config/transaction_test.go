package config

import (
	"errors"
	"testing"

	"github.com/tidynest/hypr-keybind-manager/internal/core"
)

func TestTransaction_Commit(t *testing.T) {
	m := newTestManager(t)

	tx, err := Begin(m)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if tx.ID() == "" {
		t.Fatalf("transaction has no id")
	}

	if err := tx.Commit("committed content\n"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	content, _ := m.Read()
	if content != "committed content\n" {
		t.Fatalf("commit did not land: %q", content)
	}
}

func TestTransaction_Rollback(t *testing.T) {
	m := newTestManager(t)

	tx, err := Begin(m)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	// Mutate the config outside the transaction, then roll back.
	if err := m.WriteContent("mutated\n"); err != nil {
		t.Fatalf("WriteContent: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	content, _ := m.Read()
	if content != testConfig {
		t.Fatalf("rollback did not restore begin-time content: %q", content)
	}
}

func TestTransaction_SingleUse(t *testing.T) {
	m := newTestManager(t)

	tx, err := Begin(m)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := tx.Commit("once\n"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if err := tx.Commit("twice\n"); !errors.Is(err, ErrTransactionDone) {
		t.Fatalf("second Commit = %v, want ErrTransactionDone", err)
	}
	if err := tx.Rollback(); !errors.Is(err, ErrTransactionDone) {
		t.Fatalf("Rollback after Commit = %v, want ErrTransactionDone", err)
	}
}

func TestTransaction_RollbackThenCommitRefused(t *testing.T) {
	m := newTestManager(t)

	tx, err := Begin(m)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}
	if err := tx.Commit("late\n"); !errors.Is(err, ErrTransactionDone) {
		t.Fatalf("Commit after Rollback = %v, want ErrTransactionDone", err)
	}
}

func TestTransaction_FailedCommitLeavesRollbackUsable(t *testing.T) {
	m := newTestManager(t)

	tx, err := Begin(m)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	orig := renameFile
	renameFile = func(oldpath, newpath string) error {
		if newpath == m.ConfigPath() {
			return errors.New("injected crash")
		}
		return orig(oldpath, newpath)
	}

	if err := tx.Commit("doomed\n"); err == nil {
		t.Fatalf("expected commit to fail")
	}

	// Restore the seam; the open transaction can still roll back.
	renameFile = orig
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback after failed Commit: %v", err)
	}

	content, _ := m.Read()
	if content != testConfig {
		t.Fatalf("config not restored: %q", content)
	}
}

func TestTransaction_CommitValidated(t *testing.T) {
	m := newTestManager(t)
	v := NewValidator()

	tx, err := Begin(m)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	good := []core.Keybinding{
		{
			Combo:      core.NewKeyCombo([]core.Modifier{core.ModSuper}, "K"),
			Type:       core.Bind,
			Dispatcher: "exec",
			Args:       "firefox",
		},
	}
	if err := tx.CommitValidated(v, good); err != nil {
		t.Fatalf("CommitValidated: %v", err)
	}

	result, err := core.ParseFile(m.ConfigPath())
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(result.Bindings) != 1 || !result.Bindings[0].Equal(good[0]) {
		t.Fatalf("validated commit did not land: %#v", result.Bindings)
	}
}

func TestTransaction_CommitValidated_BlocksInjection(t *testing.T) {
	m := newTestManager(t)
	v := NewValidator()

	tx, err := Begin(m)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	bad := []core.Keybinding{
		{
			Combo:      core.NewKeyCombo([]core.Modifier{core.ModSuper}, "K"),
			Type:       core.Bind,
			Dispatcher: "exec",
			Args:       "firefox; rm -rf ~",
		},
	}
	if err := tx.CommitValidated(v, bad); !errors.Is(err, ErrValidationBlocked) {
		t.Fatalf("CommitValidated = %v, want ErrValidationBlocked", err)
	}

	// Nothing was written; the transaction remains open for a clean commit.
	content, _ := m.Read()
	if content != testConfig {
		t.Fatalf("blocked commit still modified config")
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback after blocked commit: %v", err)
	}
}

//go:build windows

package orchestrator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/engine"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/report"
	"github.com/hobomirror/hobomirror/pkg/logging"
)

// TestRunTaskGuardFileMissing covers spec.md §8 S6: a target directory
// lacking the guard file must cause zero mutations, an Error, and exit
// code 1 — the sync engine must never even be invoked.
func TestRunTaskGuardFileMissing(t *testing.T) {
	src := t.TempDir()
	tgt := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	r, err := report.New(logging.RootLogger, "", logging.LevelDisabled)
	if err != nil {
		t.Fatalf("report.New: %v", err)
	}

	RunTask(r, src, src, tgt, nil, nil, engine.Options{})

	if r.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", r.ExitCode())
	}
	if _, err := os.Stat(filepath.Join(tgt, "a.txt")); !os.IsNotExist(err) {
		t.Errorf("expected zero mutations against the target, but a.txt exists (stat err = %v)", err)
	}
}

// TestRunTaskGuardFileWithoutAllowSubstring covers the same refusal for a
// guard file that exists but doesn't contain the required substring.
func TestRunTaskGuardFileWithoutAllowSubstring(t *testing.T) {
	src := t.TempDir()
	tgt := t.TempDir()
	if err := os.WriteFile(filepath.Join(tgt, engine.GuardFileName), []byte("deny"), 0o644); err != nil {
		t.Fatalf("WriteFile guard file: %v", err)
	}

	r, err := report.New(logging.RootLogger, "", logging.LevelDisabled)
	if err != nil {
		t.Fatalf("report.New: %v", err)
	}

	RunTask(r, src, src, tgt, nil, nil, engine.Options{})

	if r.ExitCode() != 1 {
		t.Errorf("ExitCode() = %d, want 1", r.ExitCode())
	}
}

// TestRunTaskGuardFileAllowsRun confirms the positive case: a guard file
// containing the required substring lets the engine actually run.
func TestRunTaskGuardFileAllowsRun(t *testing.T) {
	src := t.TempDir()
	tgt := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(tgt, engine.GuardFileName), []byte("ALLOW"), 0o644); err != nil {
		t.Fatalf("WriteFile guard file: %v", err)
	}

	r, err := report.New(logging.RootLogger, "", logging.LevelDisabled)
	if err != nil {
		t.Fatalf("report.New: %v", err)
	}

	RunTask(r, src, src, tgt, nil, nil, engine.Options{})

	if r.ExitCode() != 0 {
		t.Errorf("ExitCode() = %d, want 0", r.ExitCode())
	}
	if _, err := os.Stat(filepath.Join(tgt, "a.txt")); err != nil {
		t.Errorf("expected a.txt to be mirrored: %v", err)
	}
}

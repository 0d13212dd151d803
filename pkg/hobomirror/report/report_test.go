package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hobomirror/hobomirror/pkg/logging"
)

func TestExitCodeMapping(t *testing.T) {
	r, err := New(logging.RootLogger, "", logging.LevelInfo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := r.ExitCode(); got != 0 {
		t.Fatalf("fresh Reporter.ExitCode() = %d, want 0", got)
	}

	r.Error(errors.New("boom"))
	if got := r.ExitCode(); got != 1 {
		t.Fatalf("after Error, ExitCode() = %d, want 1", got)
	}

	r.CriticalError(errors.New("kaboom"))
	if got := r.ExitCode(); got != 2 {
		t.Fatalf("after CriticalError, ExitCode() = %d, want 2", got)
	}
}

func TestChangeRecordsParentDir(t *testing.T) {
	r, err := New(logging.RootLogger, "", logging.LevelInfo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Change(`C:\mirror\sub\file.txt`, "new file %s", "file.txt")

	if _, ok := r.ChangedDirs[`C:\mirror\sub`]; !ok {
		t.Fatalf("expected ChangedDirs to contain the parent directory, got %v", r.ChangedDirs)
	}
}

func TestChangeWithEmptyPathRecordsNothing(t *testing.T) {
	r, err := New(logging.RootLogger, "", logging.LevelInfo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r.Change("", "no path here")
	if len(r.ChangedDirs) != 0 {
		t.Fatalf("expected no ChangedDirs entries, got %v", r.ChangedDirs)
	}
}

func TestNewWithLogDirectoryWritesFiles(t *testing.T) {
	dir := t.TempDir()
	r, err := New(logging.RootLogger, dir, logging.LevelInfo)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Action("did a thing")
	r.Error(errors.New("an error"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"action.log", "error.log", "change.log", "critical.log", "debug.log"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	content, err := os.ReadFile(filepath.Join(dir, "action.log"))
	if err != nil {
		t.Fatalf("reading action.log: %v", err)
	}
	if len(content) == 0 {
		t.Error("expected action.log to contain the Action line")
	}
}

// TestLevelGatesConsoleNotCountsOrFiles verifies that logging.Level only
// gates console emission: ExitCode and file sinks must behave identically
// regardless of level, per New's doc comment.
func TestLevelGatesConsoleNotCountsOrFiles(t *testing.T) {
	dir := t.TempDir()
	r, err := New(logging.RootLogger, dir, logging.LevelDisabled)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	r.Action("did a thing")
	r.Change(`C:\mirror\sub\file.txt`, "new file")
	r.Error(errors.New("an error"))
	r.CriticalError(errors.New("kaboom"))
	r.Debug("diagnostic detail")

	if got := r.ExitCode(); got != 2 {
		t.Fatalf("ExitCode() = %d, want 2 (counts must track regardless of level)", got)
	}
	if _, ok := r.ChangedDirs[`C:\mirror\sub`]; !ok {
		t.Fatalf("expected ChangedDirs to contain the parent directory regardless of level, got %v", r.ChangedDirs)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for _, name := range []string{"action.log", "change.log", "error.log", "critical.log", "debug.log"} {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		if len(content) == 0 {
			t.Errorf("expected %s to contain a line even at LevelDisabled", name)
		}
	}
}

// Package report implements the Reporter (C6): the five fixed-semantics
// event channels of spec.md §4.6 (Action, Change, Error, CriticalError,
// Debug), the ChangedDirs set, and the exit-code mapping of spec.md §4.6
// and §7.
package report

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/logging"
)

// Reporter receives every Action/Change/Error/CriticalError/Debug event
// produced by the engine. It models the five channels as named fields
// rather than free-floating channels, following the way the teacher's code
// reaches for `logger.Info("...")` at a named sublogger rather than posting
// onto a generic event bus (spec.md §9's note that reimplementations should
// thread this explicitly rather than as a process-wide singleton — here it
// is an explicit value threaded by the orchestrator and engine, not a
// global).
type Reporter struct {
	console *logging.Logger

	actionConsole   *logging.Logger
	changeConsole   *logging.Logger
	errorConsole    *logging.Logger
	criticalConsole *logging.Logger
	debugConsole    *logging.Logger

	actionFile   *log.Logger
	changeFile   *log.Logger
	errorFile    *log.Logger
	criticalFile *log.Logger
	debugFile    *log.Logger

	closers []*os.File

	// level gates which channels actually produce output, per
	// logging.Level's mapping onto these five channels.
	level logging.Level

	// ChangedDirs is the set of target-relative directory paths that had at
	// least one change applied this run, keyed by the parent directory of
	// each changed entry (spec.md §3, §4.6). Single-threaded access only
	// (spec.md §5): no lock is held.
	ChangedDirs map[string]struct{}

	errorCount    int64
	criticalCount int64
}

// New constructs a Reporter whose console channels are subloggers of root
// (following the teacher's Logger.Sublogger pattern) and whose file sinks
// are opened, one append-only file per channel, under logDir. If logDir is
// empty, file fan-out is skipped and console-only reporting is used. level
// gates which channels actually produce output (logging.Level's doc
// comment describes the mapping); file sinks still receive every event
// regardless of level, since the log directory is an explicit opt-in audit
// trail rather than a verbosity-controlled console.
func New(root *logging.Logger, logDir string, level logging.Level) (*Reporter, error) {
	r := &Reporter{
		console:         root,
		actionConsole:   root.Sublogger("action"),
		changeConsole:   root.Sublogger("change"),
		errorConsole:    root.Sublogger("error"),
		criticalConsole: root.Sublogger("critical"),
		debugConsole:    root.Sublogger("debug"),
		level:           level,
		ChangedDirs:     make(map[string]struct{}),
	}

	if logDir == "" {
		return r, nil
	}

	open := func(name string) (*log.Logger, error) {
		f, err := os.OpenFile(filepath.Join(logDir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to open log sink %s: %w", name, err)
		}
		r.closers = append(r.closers, f)
		return logging.FileSink(f), nil
	}

	var err error
	if r.actionFile, err = open("action.log"); err != nil {
		return nil, err
	}
	if r.changeFile, err = open("change.log"); err != nil {
		return nil, err
	}
	if r.errorFile, err = open("error.log"); err != nil {
		return nil, err
	}
	if r.criticalFile, err = open("critical.log"); err != nil {
		return nil, err
	}
	if r.debugFile, err = open("debug.log"); err != nil {
		return nil, err
	}

	return r, nil
}

// Close releases the Reporter's file sinks.
func (r *Reporter) Close() error {
	var firstErr error
	for _, f := range r.closers {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Action reports that a mutation is about to happen (or has just happened),
// per spec.md §4.6. Console output requires level >= logging.LevelInfo.
func (r *Reporter) Action(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if r.level >= logging.LevelInfo {
		r.actionConsole.Println(line)
	}
	if r.actionFile != nil {
		r.actionFile.Println(line)
	}
}

// Change reports a detected source↔target divergence that will cause a
// mutation. If path is non-empty, parentDir(path) is recorded into
// ChangedDirs, per spec.md §4.6. Console output requires
// level >= logging.LevelInfo.
func (r *Reporter) Change(path, format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if r.level >= logging.LevelInfo {
		r.changeConsole.Println(line)
	}
	if r.changeFile != nil {
		r.changeFile.Println(line)
	}
	if path != "" {
		r.ChangedDirs[hobopath.Parent(path)] = struct{}{}
	}
}

// Error reports an expected failure path (spec.md §7's NotFound,
// AccessDenied, IoOther, UnrecognizedReparseTag, and FatalConfig kinds all
// surface here). The count (and therefore ExitCode) is tracked regardless
// of level; console output requires level >= logging.LevelError.
func (r *Reporter) Error(err error) {
	atomic.AddInt64(&r.errorCount, 1)
	if r.level >= logging.LevelError {
		r.errorConsole.Warn(err)
	}
	if r.errorFile != nil {
		r.errorFile.Println(err.Error())
	}
}

// CriticalError reports a defensive "this should be unreachable" path
// (spec.md §7's Unreachable kind, plus any exception caught by syncDir's
// outer catch-all, spec.md §4.8.2). The count (and therefore ExitCode) is
// tracked regardless of level; console output requires
// level >= logging.LevelError.
func (r *Reporter) CriticalError(err error) {
	atomic.AddInt64(&r.criticalCount, 1)
	if r.level >= logging.LevelError {
		r.criticalConsole.Error(err)
	}
	if r.criticalFile != nil {
		r.criticalFile.Println(err.Error())
	}
}

// Debug reports optional diagnostic detail. Console output requires
// level >= logging.LevelDebug; the file sink, if configured, always
// receives it.
func (r *Reporter) Debug(format string, args ...interface{}) {
	line := fmt.Sprintf(format, args...)
	if r.level >= logging.LevelDebug {
		r.debugConsole.Println(line)
	}
	if r.debugFile != nil {
		r.debugFile.Println(line)
	}
}

// ExitCode implements the exit-code mapping of spec.md §4.6: 2 if any
// CriticalError was reported, else 1 if any Error was reported, else 0.
func (r *Reporter) ExitCode() int {
	if atomic.LoadInt64(&r.criticalCount) > 0 {
		return 2
	}
	if atomic.LoadInt64(&r.errorCount) > 0 {
		return 1
	}
	return 0
}

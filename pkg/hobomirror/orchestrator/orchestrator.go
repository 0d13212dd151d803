// Package orchestrator implements the per-task driver (C9): the guard-file
// check, the snapshot-to-original path rewrite, and invocation of the sync
// engine (C8) on each root pair, per spec.md §4.8.1 and §6.
package orchestrator

import (
	"fmt"
	"os"
	"strings"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/engine"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/guard"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/report"
)

// MirrorTask is one (source, target) directory pair to mirror, per
// spec.md §3: "The target must exist and must contain the guard file".
type MirrorTask struct {
	SourceRoot string
	TargetRoot string
}

// requiredGuardSubstring is the case-insensitive token the guard file must
// contain, per spec.md §6.
const requiredGuardSubstring = "ALLOW"

// checkGuardFile implements the guard-file contract of spec.md §6: the
// core refuses to run a task unless
// "<targetRoot>/__HoboMirrorTarget__.txt" exists and contains the
// case-insensitive substring "allow". The file itself is never compared,
// copied, or deleted — the engine's own listing logic excludes it by name
// (engine.GuardFileName) so this check is the only place that reads it.
func checkGuardFile(targetRoot string) error {
	path := hobopath.Join(targetRoot, engine.GuardFileName)
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: unable to read guard file %s: %v", guard.ErrFatalConfig, path, err)
	}
	if !strings.Contains(strings.ToUpper(string(content)), requiredGuardSubstring) {
		return fmt.Errorf("%w: guard file %s does not contain %q", guard.ErrFatalConfig, path, requiredGuardSubstring)
	}
	return nil
}

// RunTask executes one mirroring pair after the guard-file check; it
// returns nothing, and all outcomes flow through the reporter.
// originalSrcRoot is the pre-snapshot source root: the engine uses it,
// together with snapshotSrcRoot, only to rewrite source paths for
// ignore-path matching. Change/Action messages are not rewritten and name
// source entries by their snapshot-space paths.
func RunTask(reporter *report.Reporter, snapshotSrcRoot, originalSrcRoot, targetRoot string, ignorePaths, ignoreDirNames []string, options engine.Options) {
	if err := checkGuardFile(targetRoot); err != nil {
		reporter.Error(err)
		return
	}

	eng := engine.New(reporter, snapshotSrcRoot, originalSrcRoot, ignorePaths, ignoreDirNames, options)
	eng.SyncTree(snapshotSrcRoot, targetRoot)
}

// RunTasks runs RunTask for each configured task, enforcing the
// FatalConfig precondition of spec.md §7 that the (from, to) pair list be
// non-empty before any work starts.
func RunTasks(reporter *report.Reporter, tasks []MirrorTask, snapshotFor func(sourceRoot string) (snapshotRoot string, err error), ignorePaths, ignoreDirNames []string, options engine.Options) {
	if len(tasks) == 0 {
		reporter.Error(fmt.Errorf("%w: no mirror tasks configured", guard.ErrFatalConfig))
		return
	}

	for _, task := range tasks {
		snapshotRoot, err := snapshotFor(task.SourceRoot)
		if err != nil {
			reporter.Error(fmt.Errorf("%w: unable to snapshot %s: %v", guard.ErrFatalConfig, task.SourceRoot, err))
			continue
		}
		RunTask(reporter, snapshotRoot, task.SourceRoot, task.TargetRoot, ignorePaths, ignoreDirNames, options)
	}
}

// Package engine implements the sync engine (C8): the four-phase
// per-directory reconciliation algorithm and the whole-tree driver, per
// spec.md §4.8. This is the algorithmic core of HoboMirror; everything
// else in pkg/hobomirror exists to give this package safe, classified
// primitives to call.
package engine

import (
	"strings"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/guard"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/report"
)

// GuardFileName is the sentinel file a target directory must contain
// before any task may run against it (spec.md §6). It is excluded from
// every listing this package performs and is therefore never compared,
// copied, or deleted.
const GuardFileName = "__HoboMirrorTarget__.txt"

// Temporary-file naming for the crash-safe replace protocol of spec.md
// §4.8.4: "~HoboMirror-<16 random alphanumerics>.tmp". A v4 UUID (32 hex
// digits) stands in for the 16-alphanumeric placeholder, following the
// teacher's habit of reaching for google/uuid wherever a unique name is
// needed (e.g. pkg/ssh/service.go, pkg/agent/install.go) rather than
// hand-rolling a random-string generator.
const (
	tempFilePrefix = "~HoboMirror-"
	tempFileSuffix = ".tmp"
)

// Options carries the two run-time toggles of spec.md §6.
type Options struct {
	// RefreshAccessControl gates the directory-level (step 5) and
	// child-level (Phase 4) security-descriptor copies.
	RefreshAccessControl bool
	// UpdateMetadata gates the timestamp/attribute-bit copies of Phase 4
	// and step 6.
	UpdateMetadata bool
}

// Engine drives syncDir over one (source, target) root pair. Per spec.md
// §5 it is used by exactly one goroutine for its entire lifetime; it holds
// no lock because it needs none.
type Engine struct {
	reporter *report.Reporter
	exec     *guard.Executor

	options        Options
	ignorePaths    []string
	ignoreDirNames map[string]struct{}

	// snapshotRoot/originalRoot let filterSource rewrite a snapshot-space
	// source path back to its original-volume form before testing it
	// against ignorePaths (spec.md §4.8.2 step 3), since IgnorePaths are
	// specified against the original volume, not the snapshot device.
	snapshotRoot string
	originalRoot string
}

// New constructs an Engine for one (source, target) root pair.
func New(reporter *report.Reporter, snapshotRoot, originalRoot string, ignorePaths, ignoreDirNames []string, options Options) *Engine {
	dirNames := make(map[string]struct{}, len(ignoreDirNames))
	for _, name := range ignoreDirNames {
		dirNames[strings.ToLower(name)] = struct{}{}
	}
	return &Engine{
		reporter:       reporter,
		exec:           guard.New(reporter),
		options:        options,
		ignorePaths:    ignorePaths,
		ignoreDirNames: dirNames,
		snapshotRoot:   snapshotRoot,
		originalRoot:   originalRoot,
	}
}

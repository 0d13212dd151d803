package engine

import (
	"github.com/hobomirror/hobomirror/pkg/hobomirror/classify"
)

// SyncTree implements the top-level driver of spec.md §4.8.1: both roots
// must classify successfully (else the task is reported and aborted), and
// each is forced to kind=Dir before syncDir runs, defeating the
// snapshot-volume reparse-point misclassification described in spec.md
// invariant I3 and boundary behavior "Snapshot-root-as-reparse quirk".
func (e *Engine) SyncTree(sourceRoot, targetRoot string) bool {
	src, err := classify.Classify(sourceRoot)
	if err != nil {
		return e.exec.Fail("classify source root", sourceRoot, err)
	}
	tgt, err := classify.Classify(targetRoot)
	if err != nil {
		return e.exec.Fail("classify target root", targetRoot, err)
	}

	return e.syncDir(src.ForceDir(), tgt.ForceDir(), true)
}

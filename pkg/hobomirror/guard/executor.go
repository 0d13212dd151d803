package guard

import (
	"fmt"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/report"
)

// Executor wraps primitive calls with a label and an affected path, catches
// every failure, classifies it (Classify), reports it through r as an Error
// (or additionally as a CriticalError for KindUnreachable), and returns a
// success flag. Nested failures never propagate past an Executor call, per
// spec.md §4.7 — the engine's phase loops call through here instead of
// calling winfs/reparse/security/classify primitives directly, so one bad
// entry can never escape to abort the run.
type Executor struct {
	r *report.Reporter
}

// New constructs an Executor reporting through r.
func New(r *report.Reporter) *Executor {
	return &Executor{r: r}
}

// Fail classifies and reports err under label/path, additionally raising a
// CriticalError when the classified kind is KindUnreachable. It always
// returns false, so call sites can write `return ex.Fail(...)` directly
// from a bool-returning helper.
func (e *Executor) Fail(label, path string, err error) bool {
	wrapped := fmt.Errorf("%s %s: %w", label, path, err)
	e.r.Error(wrapped)
	if Classify(err) == KindUnreachable {
		e.r.CriticalError(wrapped)
	}
	return false
}

// Do runs fn, labeled for reporting purposes. It returns true iff fn
// succeeded. This is the void form of the contract in spec.md §4.7.
func (e *Executor) Do(label, path string, fn func() error) bool {
	if err := fn(); err != nil {
		return e.Fail(label, path, err)
	}
	return true
}

// Action runs fn as a mutation: it emits the Action event on entry (spec.md
// §4.7: "Action-labeled wrappers also emit the Action event on entry"),
// then behaves exactly as Do.
func (e *Executor) Action(label, path string, fn func() error) bool {
	e.r.Action("%s %s", label, path)
	return e.Do(label, path, fn)
}

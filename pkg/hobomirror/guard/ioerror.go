// Package guard implements the error-guarded executor (C7): every primitive
// call the sync engine makes is routed through here, so that a single
// classify-report-continue policy governs all of them, per spec.md §4.7.
package guard

import (
	"errors"
	"io/fs"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
)

// Kind identifies one of the error categories of spec.md §7. It is derived
// from an error value by Classify rather than carried as a distinct Go
// error type, so call sites keep using plain `error` and ask for a
// classification only where the handling actually branches on it (in
// Executor.Fail).
type Kind uint8

const (
	// KindIoOther is any OS-level failure not otherwise distinguished.
	KindIoOther Kind = iota
	// KindNotFound is an entry that vanished between listing and use.
	KindNotFound
	// KindAccessDenied is an ACL or privilege failure.
	KindAccessDenied
	// KindUnrecognizedReparseTag is a reparse tag that is neither
	// MOUNT_POINT nor SYMLINK.
	KindUnrecognizedReparseTag
	// KindUnreachable is a precondition violation the engine believed held.
	KindUnreachable
	// KindFatalConfig is a missing/unapproved guard file or a malformed
	// task list; these abort the run before any work starts.
	KindFatalConfig
)

// String names the kind for use in Error/CriticalError report lines.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindAccessDenied:
		return "access denied"
	case KindUnrecognizedReparseTag:
		return "unrecognized reparse tag"
	case KindUnreachable:
		return "unreachable"
	case KindFatalConfig:
		return "fatal configuration error"
	default:
		return "I/O error"
	}
}

// ErrUnreachable marks a defensive panic-recovery or an explicit
// "this should never happen" code path as KindUnreachable, per spec.md §7.
var ErrUnreachable = errors.New("unreachable code path reached")

// ErrFatalConfig marks a KindFatalConfig failure: missing/unapproved guard
// file, or a malformed (from, to) pair count.
var ErrFatalConfig = errors.New("fatal configuration error")

// Classify maps err onto one of the Kind values of spec.md §7. It
// recognizes fs.ErrNotExist/fs.ErrPermission via errors.Is, which walks the
// full Unwrap() chain rather than only the concrete *fs.PathError/
// *fs.LinkError/*fs.SyscallError types os.IsNotExist/os.IsPermission
// type-switch on — call sites route every primitive failure through
// Executor.Fail after wrapping it with fmt.Errorf("...: %w", err), so the
// classification has to see through that wrapper. The two package-local
// sentinels above and item.ErrUnrecognizedReparseTag are checked the same
// way. Anything else is KindIoOther.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindIoOther
	case errors.Is(err, item.ErrUnrecognizedReparseTag):
		return KindUnrecognizedReparseTag
	case errors.Is(err, ErrUnreachable):
		return KindUnreachable
	case errors.Is(err, ErrFatalConfig):
		return KindFatalConfig
	case errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	case errors.Is(err, fs.ErrPermission):
		return KindAccessDenied
	default:
		return KindIoOther
	}
}

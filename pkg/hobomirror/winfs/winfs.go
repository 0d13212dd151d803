// Package winfs implements the filesystem primitives (C2 of the engine
// design): open/read/write/rename/delete/list/create, all using backup
// semantics so that a privileged process can bypass per-file ACL checks and
// so that reparse points are always opened as themselves rather than
// followed. Every operation here is a direct, unwrapped primitive; failure
// classification and reporting live one layer up in package guard.
//
// Callers pass ordinary paths: each primitive applies hobopath.LongForm
// itself at its entry point before calling into Windows, matching the
// division of labor in the teacher's filesystem package, where
// osvendor.FixLongPath is applied once at the entry point of each
// Windows-specific call (see pkg/filesystem/open_windows.go upstream).
package winfs

import (
	"time"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
)

// Access describes the access mode requested when opening a handle.
type Access uint8

const (
	// AccessReadAttributes opens only for metadata/reparse queries.
	AccessReadAttributes Access = iota
	// AccessRead opens for reading file content.
	AccessRead
	// AccessWriteAttributes opens for writing timestamps/attribute bits.
	AccessWriteAttributes
	// AccessDelete opens with delete access (plus read-attributes access).
	AccessDelete
)

// Handle is an opaque, short-lived handle to an open filesystem object. It
// must be closed by the caller that obtained it; handles are never cached
// across primitive calls (spec.md §3 Lifecycle, §5 Shared-resource policy).
type Handle interface {
	Close() error
}

// DirEntry is one child returned by ListDirectory: a pre-stat'd name plus
// the basic attributes and length needed to drive reconciliation without a
// second per-entry handle open (spec.md §4.2 rationale).
type DirEntry struct {
	Name    string
	Attrs   item.Attrs
	Length  uint64
	Reparse bool
}

// CopyProgress reports the state of an in-progress content copy. It is
// delivered at start (Copied == 0), after each chunk, and at completion
// (Copied == Total).
type CopyProgress struct {
	Total  uint64
	Copied uint64
}

// filetimeEpoch returns the Windows FILETIME epoch (1601-01-01 UTC). The
// FILETIME conversions themselves (filetimeToTime, timeToFiletime) live in
// metadata_windows.go and map a zero FILETIME to and from the zero
// time.Time rather than to this epoch.
func filetimeEpoch() time.Time {
	return time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)
}

// Package item defines the tagged-union representation of a single
// filesystem entry (an Item, per the data model) that flows through the
// classifier, the sync engine, and the reporter.
package item

import (
	"time"

	"github.com/pkg/errors"
)

// Kind identifies the classification of a filesystem entry. It is exactly
// one of the five values below; there is no "unknown" or "mixed" kind by
// design; classification failures are reported as errors rather than
// represented in this type.
type Kind uint8

const (
	// KindFile indicates a regular file.
	KindFile Kind = iota
	// KindDir indicates a plain directory (not a junction or symbolic
	// link).
	KindDir
	// KindFileSymlink indicates a symbolic link whose target is (or is
	// expected to be) a file.
	KindFileSymlink
	// KindDirSymlink indicates a symbolic link whose target is (or is
	// expected to be) a directory.
	KindDirSymlink
	// KindJunction indicates an NTFS junction (mount point).
	KindJunction
)

// String returns a human-readable name for the kind, used in Change/Action
// messages ("new file", "kind changed from file to junction", ...).
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindFileSymlink:
		return "file symlink"
	case KindDirSymlink:
		return "directory symlink"
	case KindJunction:
		return "junction"
	default:
		return "unrecognized"
	}
}

// IsLink reports whether the kind is one of the three reparse-bearing kinds.
func (k Kind) IsLink() bool {
	return k == KindFileSymlink || k == KindDirSymlink || k == KindJunction
}

// IsContainer reports whether the kind presents as a container for
// traversal purposes at the top level (spec.md invariant I3): plain
// directories, junctions, and directory symlinks all qualify, though
// invariant I2 forbids ever actually traversing into a link's target.
func (k Kind) IsContainer() bool {
	return k == KindDir || k == KindDirSymlink || k == KindJunction
}

// Attrs holds the OS-level timestamps and attribute bits for an entry.
// Timestamps are opaque to the engine beyond equality comparison; attribute
// bits are round-tripped verbatim.
type Attrs struct {
	CreationTime   time.Time
	LastAccessTime time.Time
	LastWriteTime  time.Time
	ChangeTime     time.Time

	ReadOnly  bool
	Hidden    bool
	System    bool
	Archive   bool
	Reparse   bool
	Directory bool
	Compressed bool
	Encrypted  bool
	Sparse     bool
}

// ReparsePointData carries the fields of a junction or symbolic link reparse
// point that matter for comparison and re-creation. IsRelative is only
// meaningful for symbolic links; for junctions it is always false.
type ReparsePointData struct {
	// Tag identifies the reparse tag the data was read from; it is not part
	// of the comparison surface (callers compare via Item.Kind instead) but
	// is retained for diagnostics.
	Tag            Tag
	SubstituteName string
	PrintName      string
	IsRelative     bool
}

// Tag identifies a recognized reparse tag.
type Tag uint8

const (
	// TagNone indicates the absence of a reparse point.
	TagNone Tag = iota
	// TagMountPoint is IO_REPARSE_TAG_MOUNT_POINT (junctions).
	TagMountPoint
	// TagSymlink is IO_REPARSE_TAG_SYMLINK.
	TagSymlink
)

// Equal reports whether two ReparsePointData values compare equal for the
// purposes of Phase 2 reconciliation (spec.md §4.8.2): junctions compare
// substitute+print name only; symbolic links additionally compare the
// relative flag. The caller supplies whether the relative flag should be
// considered (i.e. whether kind == KindJunction or a symlink kind).
func (r *ReparsePointData) Equal(other *ReparsePointData, compareRelative bool) bool {
	if r == nil || other == nil {
		return r == other
	}
	if r.SubstituteName != other.SubstituteName || r.PrintName != other.PrintName {
		return false
	}
	if compareRelative && r.IsRelative != other.IsRelative {
		return false
	}
	return true
}

// Item is one filesystem entry, as defined by spec.md §3. It is constructed
// exclusively via the classify package or via New* constructors below, which
// enforce invariant I1: Reparse is non-nil if and only if Kind is one of the
// three link kinds, Length is meaningful (and non-zero only) for KindFile,
// and a Junction's Reparse.Tag is always TagMountPoint.
type Item struct {
	FullPath string
	Name     string
	kind     Kind
	Attrs    Attrs
	length   uint64
	reparse  *ReparsePointData
}

// NewFile constructs a file Item.
func NewFile(fullPath, name string, attrs Attrs, length uint64) *Item {
	return &Item{FullPath: fullPath, Name: name, kind: KindFile, Attrs: attrs, length: length}
}

// NewDir constructs a plain-directory Item.
func NewDir(fullPath, name string, attrs Attrs) *Item {
	return &Item{FullPath: fullPath, Name: name, kind: KindDir, Attrs: attrs}
}

// NewLink constructs a link-kind Item (KindFileSymlink, KindDirSymlink, or
// KindJunction). It panics if kind is not a link kind or if reparse is nil,
// or if a KindJunction is paired with anything other than TagMountPoint —
// these are invariant violations that indicate a bug in the caller (the
// classifier), not a recoverable runtime condition.
func NewLink(fullPath, name string, kind Kind, attrs Attrs, reparse *ReparsePointData) *Item {
	if !kind.IsLink() {
		panic("NewLink called with non-link kind")
	}
	if reparse == nil {
		panic("NewLink called with nil reparse data")
	}
	if kind == KindJunction && reparse.Tag != TagMountPoint {
		panic("junction item constructed with non-mount-point reparse tag")
	}
	return &Item{FullPath: fullPath, Name: name, kind: kind, Attrs: attrs, reparse: reparse}
}

// Kind returns the item's kind.
func (i *Item) Kind() Kind {
	return i.kind
}

// Length returns the file size in bytes. It is always 0 for non-file kinds.
func (i *Item) Length() uint64 {
	if i.kind != KindFile {
		return 0
	}
	return i.length
}

// Reparse returns the item's reparse data, or nil if the item's kind is not
// a link kind.
func (i *Item) Reparse() *ReparsePointData {
	return i.reparse
}

// ForceDir returns a shallow copy of the item with its kind coerced to
// KindDir and its reparse data cleared, used by the top-level driver
// (spec.md §4.8.1 step 2) to defeat snapshot-volume reparse-point
// misclassification at the mirror roots.
func (i *Item) ForceDir() *Item {
	clone := *i
	clone.kind = KindDir
	clone.reparse = nil
	clone.length = 0
	return &clone
}

// ErrUnrecognizedReparseTag is returned by the classifier when an entry
// carries the FILE_ATTRIBUTE_REPARSE_POINT bit but its tag is neither
// IO_REPARSE_TAG_MOUNT_POINT nor IO_REPARSE_TAG_SYMLINK.
var ErrUnrecognizedReparseTag = errors.New("unrecognized reparse tag")

// Package hobopath implements the path utilities of the engine design (C1):
// normalization, comparison, and long-form ("raw-path marker") paths, plus
// the snapshot-to-original path rewrite used for display and reporting.
package hobopath

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// rawPathPrefix is the NT "raw-path marker" that disables the Win32
// subsystem's path normalization (so long paths and literal trailing dots
// and spaces are preserved verbatim), following the convention documented
// for Go's os.fixLongPath and adapted in the teacher's
// pkg/filesystem/third_party/os/path_windows.go.
const rawPathPrefix = `\\?\`

const separator = '\\'

// foldCaser performs the case folding used by PathsEqual. A single shared
// caser avoids reallocating one per comparison.
var foldCaser = cases.Fold()

// WithTrailingSeparator ensures p ends in the OS path separator.
func WithTrailingSeparator(p string) string {
	if p == "" {
		return string(separator)
	}
	if p[len(p)-1] == separator {
		return p
	}
	return p + string(separator)
}

// LongForm prefixes p with the raw-path marker so OS path processing is
// bypassed, per spec.md §4.1. If p already begins with the raw-path marker,
// it is returned unchanged. Relative paths and paths containing ".."
// elements are returned unmodified, matching the conservative behavior of
// the long-path fixup this is adapted from (no attempt is made to resolve
// ".." without touching the filesystem).
func LongForm(p string) string {
	if strings.HasPrefix(p, rawPathPrefix) {
		return p
	}
	if len(p) < 248 {
		return p
	}
	if !isAbs(p) {
		return p
	}

	normalized := strings.ReplaceAll(p, "/", string(separator))
	var b strings.Builder
	b.Grow(len(rawPathPrefix) + len(normalized) + 1)
	b.WriteString(rawPathPrefix)

	components := strings.Split(normalized, string(separator))
	first := true
	for _, c := range components {
		if c == "" {
			continue
		}
		if c == "." {
			continue
		}
		if c == ".." {
			// Unhandled, as with the upstream fixLongPath: bail out and
			// return the path unmodified rather than attempt resolution.
			return p
		}
		if !first {
			b.WriteByte(separator)
		}
		b.WriteString(c)
		first = false
	}

	result := b.String()
	// A drive root needs a trailing separator (e.g. \\?\C: -> \\?\C:\).
	if len(result) == len(rawPathPrefix)+2 {
		result += string(separator)
	}
	return result
}

func isAbs(p string) bool {
	v := volumeName(p)
	if v == "" {
		return false
	}
	rest := p[len(v):]
	return rest != "" && (rest[0] == separator || rest[0] == '/')
}

func volumeName(p string) string {
	if len(p) < 2 {
		return ""
	}
	c := p[0]
	if p[1] == ':' && (('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')) {
		return p[:2]
	}
	return ""
}

// TrimLongForm strips the raw-path marker, if present, for display purposes
// (e.g. before handing a path to the reporter).
func TrimLongForm(p string) string {
	return strings.TrimPrefix(p, rawPathPrefix)
}

// normalizeForComparison lower-cases (via Unicode case folding) and
// separator-normalizes p, then strips a single trailing separator, so that
// "C:\Foo\Bar", "c:/foo/bar/", and "C:\foo\bar" all compare equal.
func normalizeForComparison(p string) string {
	p = TrimLongForm(p)
	p = strings.ReplaceAll(p, "/", string(separator))
	if len(p) > 0 && p[len(p)-1] == separator {
		p = p[:len(p)-1]
	}
	return foldCaser.String(p)
}

// PathsEqual reports whether a and b name the same path string under
// case-insensitive, separator-normalized, trailing-separator-insensitive
// comparison. Per spec.md §4.1 it does NOT attempt to canonicalize drive
// letters vs. volume GUIDs vs. junction mounts: two different textual names
// for the same underlying object compare unequal. It is used only for the
// Ignore-paths filter.
func PathsEqual(a, b string) bool {
	return normalizeForComparison(a) == normalizeForComparison(b)
}

// Join joins a parent directory and a leaf name, inserting a separator if
// necessary. It is a thin, separator-aware wrapper rather than
// filepath.Join so that it never cleans ".." elements or collapses
// separators in ways that would disturb an already-long-form path.
func Join(parent, name string) string {
	if parent == "" {
		return name
	}
	if parent[len(parent)-1] == separator {
		return parent + name
	}
	return parent + string(separator) + name
}

// Parent returns the parent directory of p, using the last separator as the
// split point. It returns "" if p contains no separator.
func Parent(p string) string {
	p = strings.TrimSuffix(p, string(separator))
	idx := strings.LastIndexByte(p, separator)
	if idx < 0 {
		return ""
	}
	return p[:idx]
}

// SnapshotRewrite maps a snapshot-space path back to the original-volume
// path for display and reporting, per spec.md §4.1. It also handles the
// shadow-copy device-root quirk: if path is exactly the shadow-copy device
// root with no trailing separator (or an incomplete separator sequence),
// the caller must append the missing separator(s) before passing the
// result to any list/stat primitive — this function performs that fixup
// internally so callers never need to special-case it.
func SnapshotRewrite(path, snapshotRoot, originalRoot string) string {
	normalizedSnapshotRoot := strings.TrimRight(snapshotRoot, `\/`)

	if path == normalizedSnapshotRoot {
		// Exactly the device root: the caller will be handing this back
		// to a list/stat primitive, which requires a trailing separator
		// on shadow-copy device paths to behave correctly.
		return WithTrailingSeparator(originalRoot)
	}

	if !strings.HasPrefix(path, normalizedSnapshotRoot) {
		return path
	}

	rest := path[len(normalizedSnapshotRoot):]
	rest = strings.TrimPrefix(rest, `\`)
	rest = strings.TrimPrefix(rest, `/`)

	if rest == "" {
		return originalRoot
	}
	return Join(strings.TrimRight(originalRoot, `\/`), rest)
}

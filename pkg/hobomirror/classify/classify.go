// Package classify implements the entry classifier (C5): given a path,
// produce an Item in one pass, per spec.md §4.5.
package classify

import (
	"fmt"
	"path/filepath"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/reparse"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/winfs"
)

// Classify opens path with read-attributes access and derives its Item:
// attrs, directory bit, reparse data (if any), and kind. For a reparse
// point, reparse.GetReparseData opens the path a second time to read the
// reparse data. On a
// recognized reparse tag mismatch it returns item.ErrUnrecognizedReparseTag,
// which callers treat as an Error per spec.md §7 (skip the entry, continue
// the run). The whole operation is expected to be wrapped by the guard
// package in engine call sites so that classification failures never
// escape a phase loop.
func Classify(path string) (*item.Item, error) {
	h, err := winfs.OpenHandle(path, winfs.AccessReadAttributes)
	if err != nil {
		return nil, fmt.Errorf("unable to open %s: %w", path, err)
	}
	defer h.Close()

	attrs, err := winfs.GetAttributes(h)
	if err != nil {
		return nil, fmt.Errorf("unable to read attributes for %s: %w", path, err)
	}

	name := filepath.Base(path)

	var reparseData *item.ReparsePointData
	if attrs.Reparse {
		reparseData, err = reparse.GetReparseData(path)
		if err != nil {
			return nil, err
		}
	}

	var length uint64
	if reparseData == nil && !attrs.Directory {
		length, err = winfs.GetFileLength(h)
		if err != nil {
			return nil, fmt.Errorf("unable to read length for %s: %w", path, err)
		}
	}

	return build(path, name, attrs, reparseData, length)
}

// ClassifyChild builds an Item from a DirEntry already returned by a parent
// listDirectory call (winfs.ListDirectory), avoiding a second handle open
// for the common case (its length and attributes were already captured by
// the same FindFirstFile/FindNextFile enumeration) — but still performs a
// full reparse-data query when the listing indicates a reparse point,
// since WIN32_FIND_DATA alone does not carry the substitute/print names.
func ClassifyChild(parentPath string, entry winfs.DirEntry) (*item.Item, error) {
	fullPath := parentPath
	if len(fullPath) == 0 || fullPath[len(fullPath)-1] != '\\' {
		fullPath += `\`
	}
	fullPath += entry.Name

	var reparseData *item.ReparsePointData
	if entry.Attrs.Reparse {
		var err error
		reparseData, err = reparse.GetReparseData(fullPath)
		if err != nil {
			return nil, err
		}
	}

	return build(fullPath, entry.Name, entry.Attrs, reparseData, entry.Length)
}

// build applies the classification rules of spec.md §4.5 steps 2-5 given
// already-queried attrs, reparse data, and (for the File case) length.
func build(path, name string, attrs item.Attrs, reparseData *item.ReparsePointData, length uint64) (*item.Item, error) {
	if reparseData == nil {
		if attrs.Directory {
			return item.NewDir(path, name, attrs), nil
		}
		return item.NewFile(path, name, attrs, length), nil
	}

	switch reparseData.Tag {
	case item.TagMountPoint:
		return item.NewLink(path, name, item.KindJunction, attrs, reparseData), nil
	case item.TagSymlink:
		kind := item.KindFileSymlink
		if attrs.Directory {
			kind = item.KindDirSymlink
		}
		return item.NewLink(path, name, kind, attrs, reparseData), nil
	default:
		return nil, item.ErrUnrecognizedReparseTag
	}
}

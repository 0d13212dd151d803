//go:build windows

package winfs

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/windows"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
)

// ListDirectory implements the listDirectory contract of spec.md §4.2. It
// enumerates path's immediate children in a single FindFirstFile/
// FindNextFile pass, capturing each child's name, timestamps, attribute
// bits, and length from WIN32_FIND_DATA without a per-entry handle open.
// The reparse tag is not read here: a reparse point is only flagged through
// its attribute bit, and its reparse data is queried separately by the
// classifier (classify.ClassifyChild). It fails as a whole (returns an
// error, no partial slice) if the directory cannot be read at all.
func ListDirectory(path string) ([]DirEntry, error) {
	searchPath := hobopath.LongForm(filepath.Join(path, "*"))

	searchPath16, err := windows.UTF16PtrFromString(searchPath)
	if err != nil {
		return nil, fmt.Errorf("unable to convert search path to UTF-16: %w", err)
	}

	var findData windows.Win32finddata
	handle, err := windows.FindFirstFile(searchPath16, &findData)
	if err != nil {
		return nil, fmt.Errorf("unable to enumerate directory: %w", err)
	}
	defer windows.FindClose(handle)

	var entries []DirEntry
	for {
		name := windows.UTF16ToString(findData.FileName[:])
		if name != "." && name != ".." {
			entries = append(entries, findDataToEntry(name, findData))
		}

		if err := windows.FindNextFile(handle, &findData); err != nil {
			if err == windows.ERROR_NO_MORE_FILES {
				break
			}
			return nil, fmt.Errorf("unable to continue directory enumeration: %w", err)
		}
	}

	return entries, nil
}

func findDataToEntry(name string, d windows.Win32finddata) DirEntry {
	attrs := item.Attrs{
		CreationTime:   filetimeToTime(d.CreationTime),
		LastAccessTime: filetimeToTime(d.LastAccessTime),
		LastWriteTime:  filetimeToTime(d.LastWriteTime),
		ReadOnly:       d.FileAttributes&windows.FILE_ATTRIBUTE_READONLY != 0,
		Hidden:         d.FileAttributes&windows.FILE_ATTRIBUTE_HIDDEN != 0,
		System:         d.FileAttributes&windows.FILE_ATTRIBUTE_SYSTEM != 0,
		Archive:        d.FileAttributes&windows.FILE_ATTRIBUTE_ARCHIVE != 0,
		Reparse:        d.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT != 0,
		Directory:      d.FileAttributes&windows.FILE_ATTRIBUTE_DIRECTORY != 0,
		Compressed:     d.FileAttributes&windows.FILE_ATTRIBUTE_COMPRESSED != 0,
		Encrypted:      d.FileAttributes&windows.FILE_ATTRIBUTE_ENCRYPTED != 0,
		Sparse:         d.FileAttributes&windows.FILE_ATTRIBUTE_SPARSE_FILE != 0,
	}

	length := uint64(d.FileSizeHigh)<<32 + uint64(d.FileSizeLow)

	return DirEntry{
		Name:    name,
		Attrs:   attrs,
		Length:  length,
		Reparse: attrs.Reparse,
	}
}

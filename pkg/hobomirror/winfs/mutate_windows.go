//go:build windows

package winfs

import (
	"fmt"
	"os"

	"golang.org/x/sys/windows"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
)

// clearReadOnly removes the read-only attribute from path if set, so that a
// subsequent delete of a read-only entry succeeds (spec.md §4.2: "deletes
// read-only entries"). Grounded on the clearReadOnly helper in
// microsoft-hcsshim's internal/safefile/safeopen.go.
func clearReadOnly(path string) error {
	longPath := hobopath.LongForm(path)
	path16, err := windows.UTF16PtrFromString(longPath)
	if err != nil {
		return err
	}
	attrs, err := windows.GetFileAttributes(path16)
	if err != nil {
		return err
	}
	if attrs&windows.FILE_ATTRIBUTE_READONLY == 0 {
		return nil
	}
	return windows.SetFileAttributes(path16, attrs&^windows.FILE_ATTRIBUTE_READONLY)
}

// Delete implements the delete contract of spec.md §4.2: deletes a file or
// an empty directory, removing only the reparse point itself for junctions
// and directory symbolic links (Windows' RemoveDirectory already has this
// behavior for reparse-point directories — it never follows the link). It
// fails if the directory is non-empty; recursion is the engine's job (see
// engine.actDelete).
func Delete(path string, isDir bool) error {
	longPath := hobopath.LongForm(path)
	path16, err := windows.UTF16PtrFromString(longPath)
	if err != nil {
		return err
	}

	var delErr error
	if isDir {
		delErr = windows.RemoveDirectory(path16)
	} else {
		delErr = windows.DeleteFile(path16)
	}

	if delErr == windows.ERROR_ACCESS_DENIED {
		if err := clearReadOnly(path); err == nil {
			if isDir {
				delErr = windows.RemoveDirectory(path16)
			} else {
				delErr = windows.DeleteFile(path16)
			}
		}
	}

	return delErr
}

// Rename implements the rename contract of spec.md §4.2: atomic within a
// volume, and when overwrite is true the target's read-only flag is
// ignored.
func Rename(oldPath, newPath string, overwrite bool) error {
	oldPath16, err := windows.UTF16PtrFromString(hobopath.LongForm(oldPath))
	if err != nil {
		return err
	}
	newPath16, err := windows.UTF16PtrFromString(hobopath.LongForm(newPath))
	if err != nil {
		return err
	}

	var flags uint32 = windows.MOVEFILE_WRITE_THROUGH
	if overwrite {
		flags |= windows.MOVEFILE_REPLACE_EXISTING
		// Ignore the target's read-only bit on overwrite, per spec.
		if clearErr := clearReadOnly(newPath); clearErr != nil && !os.IsNotExist(clearErr) {
			// Not fatal: MoveFileEx will simply fail with access-denied if
			// the attribute really does block the overwrite, and that
			// failure is reported to the caller below.
		}
	}

	if err := windows.MoveFileEx(oldPath16, newPath16, flags); err != nil {
		return fmt.Errorf("unable to rename: %w", err)
	}
	return nil
}

// CreateEmptyFile implements the createEmptyFile contract of spec.md §4.2:
// fails if path already exists.
func CreateEmptyFile(path string) error {
	path16, err := windows.UTF16PtrFromString(hobopath.LongForm(path))
	if err != nil {
		return err
	}
	h, err := windows.CreateFile(
		path16,
		windows.GENERIC_WRITE,
		0,
		nil,
		windows.CREATE_NEW,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return err
	}
	return windows.CloseHandle(h)
}

// CreateDirectory implements the createDirectory contract of spec.md §4.2:
// fails if path already exists.
func CreateDirectory(path string) error {
	path16, err := windows.UTF16PtrFromString(hobopath.LongForm(path))
	if err != nil {
		return err
	}
	return windows.CreateDirectory(path16, nil)
}

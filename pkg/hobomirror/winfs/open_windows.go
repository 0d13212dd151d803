//go:build windows

package winfs

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
)

// fileHandle wraps a raw Windows handle so it satisfies Handle and so that
// every other primitive in this package can recover the underlying
// windows.Handle via asWindowsHandle without exporting the concrete type.
type fileHandle struct {
	h    windows.Handle
	path string
}

func (f *fileHandle) Close() error {
	if f.h == windows.InvalidHandle {
		return nil
	}
	err := windows.CloseHandle(f.h)
	f.h = windows.InvalidHandle
	return err
}

// openHandle opens path with backup semantics. followLeafReparsePoint
// controls whether the FILE_FLAG_OPEN_REPARSE_POINT flag is applied: the
// engine always opens with followLeafReparsePoint == false, since per
// invariant I2 a reparse point must always be opened as itself.
func openHandle(path string, access uint32, followLeafReparsePoint bool) (*fileHandle, error) {
	longPath := hobopath.LongForm(path)

	path16, err := windows.UTF16PtrFromString(longPath)
	if err != nil {
		return nil, fmt.Errorf("unable to convert path to UTF-16: %w", err)
	}

	flags := uint32(windows.FILE_ATTRIBUTE_NORMAL | windows.FILE_FLAG_BACKUP_SEMANTICS)
	if !followLeafReparsePoint {
		flags |= windows.FILE_FLAG_OPEN_REPARSE_POINT
	}

	h, err := windows.CreateFile(
		path16,
		access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		flags,
		0,
	)
	if err != nil {
		return nil, err
	}

	return &fileHandle{h: h, path: filepath.Clean(path)}, nil
}

// OpenHandle implements the openHandle contract of spec.md §4.2. The
// returned Handle must be closed by the caller.
func OpenHandle(path string, access Access) (Handle, error) {
	var winAccess uint32
	switch access {
	case AccessReadAttributes:
		winAccess = windows.FILE_READ_ATTRIBUTES
	case AccessRead:
		winAccess = windows.GENERIC_READ
	case AccessWriteAttributes:
		winAccess = windows.FILE_WRITE_ATTRIBUTES
	case AccessDelete:
		winAccess = windows.DELETE | windows.FILE_READ_ATTRIBUTES
	default:
		return nil, fmt.Errorf("unsupported access mode %d", access)
	}

	h, err := openHandle(path, winAccess, false)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("unable to open path: %w", err)
	}
	return h, nil
}

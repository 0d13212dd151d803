//go:build windows

package winfs

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/windows"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
)

// copyChunkSize is the unit at which copyFileContent reports progress, per
// spec.md §4.2 ("yields progress ... after each 128 KiB chunk").
const copyChunkSize = 128 * 1024

// CopyFileContent implements the copyFileContent contract of spec.md §4.2:
// creates dst (must not exist), copies bytes only — no timestamps, no
// attributes, no ACLs, no alternate streams, no sparse/compressed bits.
// progress, if non-nil, is invoked with {total, copied} at start, after
// each 128 KiB chunk, and at completion.
func CopyFileContent(src, dst string, progress func(CopyProgress)) error {
	srcPath16, err := windows.UTF16PtrFromString(hobopath.LongForm(src))
	if err != nil {
		return err
	}
	srcHandle, err := windows.CreateFile(
		srcPath16,
		windows.GENERIC_READ,
		windows.FILE_SHARE_READ,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL|windows.FILE_FLAG_SEQUENTIAL_SCAN,
		0,
	)
	if err != nil {
		return fmt.Errorf("unable to open source file: %w", err)
	}
	srcFile := os.NewFile(uintptr(srcHandle), src)
	defer srcFile.Close()

	info, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("unable to stat source file: %w", err)
	}
	total := uint64(info.Size())

	dstPath16, err := windows.UTF16PtrFromString(hobopath.LongForm(dst))
	if err != nil {
		return err
	}
	dstHandle, err := windows.CreateFile(
		dstPath16,
		windows.GENERIC_WRITE,
		0,
		nil,
		windows.CREATE_NEW,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return fmt.Errorf("unable to create destination file: %w", err)
	}
	dstFile := os.NewFile(uintptr(dstHandle), dst)
	defer dstFile.Close()

	if progress != nil {
		progress(CopyProgress{Total: total, Copied: 0})
	}

	buffer := make([]byte, copyChunkSize)
	var copied uint64
	for {
		n, readErr := srcFile.Read(buffer)
		if n > 0 {
			if _, writeErr := dstFile.Write(buffer[:n]); writeErr != nil {
				return fmt.Errorf("unable to write destination file: %w", writeErr)
			}
			copied += uint64(n)
			if progress != nil {
				progress(CopyProgress{Total: total, Copied: copied})
			}
		}
		if readErr == io.EOF {
			break
		} else if readErr != nil {
			return fmt.Errorf("unable to read source file: %w", readErr)
		}
	}

	if progress != nil {
		progress(CopyProgress{Total: total, Copied: copied})
	}

	return nil
}

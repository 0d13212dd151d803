//go:build windows

package reparse

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/hobomirror/hobomirror/pkg/hobomirror/hobopath"
	"github.com/hobomirror/hobomirror/pkg/hobomirror/item"
)

// pathBuilder accumulates UTF-16 name data for a reparse buffer's trailing
// PathBuffer, tracking byte offsets/lengths the way the reference codec in
// the example pack's reparse-point helpers do (substitute name then print
// name, each null-terminated but with lengths that exclude the terminator).
type pathBuilder struct {
	buf []uint16
}

func (b *pathBuilder) add(s string) (offset, length uint16) {
	encoded, _ := syscall.UTF16FromString(s)
	off := uint16(len(b.buf) * 2)
	b.buf = append(b.buf, encoded...)
	return off, uint16(len(encoded)-1) * 2
}

func openReparseHandle(path string, access uint32) (windows.Handle, error) {
	path16, err := windows.UTF16PtrFromString(hobopath.LongForm(path))
	if err != nil {
		return 0, err
	}
	return windows.CreateFile(
		path16,
		access,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS|windows.FILE_FLAG_OPEN_REPARSE_POINT,
		0,
	)
}

// GetReparseData implements the getReparseData contract of spec.md §4.3:
// returns nil (and no error) if path exists and is not a reparse point.
func GetReparseData(path string) (*item.ReparsePointData, error) {
	h, err := openReparseHandle(path, windows.GENERIC_READ)
	if err != nil {
		return nil, fmt.Errorf("unable to open path for reparse query: %w", err)
	}
	defer windows.CloseHandle(h)

	buf := make([]byte, maxReparseDataBufferSize)
	var bytesReturned uint32
	err = windows.DeviceIoControl(h, fsctlGetReparsePoint, nil, 0, &buf[0], uint32(len(buf)), &bytesReturned, nil)
	if err != nil {
		if err == windows.ERROR_NOT_A_REPARSE_POINT {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to query reparse data: %w", err)
	}

	header := (*reparseDataBufferHeader)(unsafe.Pointer(&buf[0]))
	detail := buf[unsafe.Sizeof(*header):]

	switch header.ReparseTag {
	case ioReparseTagMountPoint:
		mp := (*mountPointReparseBuffer)(unsafe.Pointer(&detail[0]))
		names := (*[1 << 15]uint16)(unsafe.Pointer(&mp.PathBuffer[0]))
		substitute := windows.UTF16ToString(names[mp.SubstituteNameOffset/2 : (mp.SubstituteNameOffset+mp.SubstituteNameLength)/2])
		print := windows.UTF16ToString(names[mp.PrintNameOffset/2 : (mp.PrintNameOffset+mp.PrintNameLength)/2])
		return &item.ReparsePointData{
			Tag:            item.TagMountPoint,
			SubstituteName: substitute,
			PrintName:      print,
		}, nil
	case ioReparseTagSymlink:
		sl := (*symbolicLinkReparseBuffer)(unsafe.Pointer(&detail[0]))
		names := (*[1 << 15]uint16)(unsafe.Pointer(&sl.PathBuffer[0]))
		substitute := windows.UTF16ToString(names[sl.SubstituteNameOffset/2 : (sl.SubstituteNameOffset+sl.SubstituteNameLength)/2])
		print := windows.UTF16ToString(names[sl.PrintNameOffset/2 : (sl.PrintNameOffset+sl.PrintNameLength)/2])
		return &item.ReparsePointData{
			Tag:            item.TagSymlink,
			SubstituteName: substitute,
			PrintName:      print,
			IsRelative:     sl.Flags&symlinkFlagRelative != 0,
		}, nil
	default:
		return nil, item.ErrUnrecognizedReparseTag
	}
}

// SetJunctionData implements the setJunctionData contract of spec.md §4.3:
// sets MOUNT_POINT data on an existing directory.
func SetJunctionData(path, substituteName, printName string) error {
	var pb pathBuilder
	subOff, subLen := pb.add(substituteName)
	printOff, printLen := pb.add(printName)

	headerSize := unsafe.Sizeof(reparseDataBufferHeader{})
	fixedSize := unsafe.Sizeof(mountPointReparseBuffer{}) - unsafe.Sizeof(uint16(0)) // minus placeholder PathBuffer[1]
	detailLen := fixedSize + uintptr(len(pb.buf))*2

	buf := make([]byte, headerSize+detailLen)
	header := (*reparseDataBufferHeader)(unsafe.Pointer(&buf[0]))
	header.ReparseTag = ioReparseTagMountPoint
	header.ReparseDataLength = uint16(detailLen)

	mp := (*mountPointReparseBuffer)(unsafe.Pointer(&buf[headerSize]))
	mp.SubstituteNameOffset = subOff
	mp.SubstituteNameLength = subLen
	mp.PrintNameOffset = printOff
	mp.PrintNameLength = printLen
	namesDst := (*[1 << 15]uint16)(unsafe.Pointer(&mp.PathBuffer[0]))
	copy(namesDst[:len(pb.buf)], pb.buf)

	return setReparsePoint(path, buf)
}

// SetSymlinkData implements the setSymlinkData contract of spec.md §4.3:
// sets SYMLINK data on an existing zero-length file or empty directory.
func SetSymlinkData(path, substituteName, printName string, relative bool) error {
	var pb pathBuilder
	subOff, subLen := pb.add(substituteName)
	printOff, printLen := pb.add(printName)

	headerSize := unsafe.Sizeof(reparseDataBufferHeader{})
	fixedSize := unsafe.Sizeof(symbolicLinkReparseBuffer{}) - unsafe.Sizeof(uint16(0))
	detailLen := fixedSize + uintptr(len(pb.buf))*2

	buf := make([]byte, headerSize+detailLen)
	header := (*reparseDataBufferHeader)(unsafe.Pointer(&buf[0]))
	header.ReparseTag = ioReparseTagSymlink
	header.ReparseDataLength = uint16(detailLen)

	sl := (*symbolicLinkReparseBuffer)(unsafe.Pointer(&buf[headerSize]))
	sl.SubstituteNameOffset = subOff
	sl.SubstituteNameLength = subLen
	sl.PrintNameOffset = printOff
	sl.PrintNameLength = printLen
	if relative {
		sl.Flags = symlinkFlagRelative
	}
	namesDst := (*[1 << 15]uint16)(unsafe.Pointer(&sl.PathBuffer[0]))
	copy(namesDst[:len(pb.buf)], pb.buf)

	return setReparsePoint(path, buf)
}

func setReparsePoint(path string, buf []byte) error {
	h, err := openReparseHandle(path, windows.GENERIC_WRITE)
	if err != nil {
		return fmt.Errorf("unable to open path for reparse write: %w", err)
	}
	defer windows.CloseHandle(h)

	var bytesReturned uint32
	if err := windows.DeviceIoControl(h, fsctlSetReparsePoint, &buf[0], uint32(len(buf)), nil, 0, &bytesReturned, nil); err != nil {
		return fmt.Errorf("unable to set reparse point: %w", err)
	}
	return nil
}

// deleteReparsePoint removes the reparse metadata for the given tag,
// leaving the underlying file or directory in place. Per FSCTL_DELETE_REPARSE_POINT
// semantics, the input buffer need only contain the header with the tag and
// a zero data length.
func deleteReparsePoint(path string, tag uint32) error {
	h, err := openReparseHandle(path, windows.GENERIC_WRITE)
	if err != nil {
		return fmt.Errorf("unable to open path for reparse delete: %w", err)
	}
	defer windows.CloseHandle(h)

	header := reparseDataBufferHeader{ReparseTag: tag}
	var bytesReturned uint32
	size := unsafe.Sizeof(header)
	err = windows.DeviceIoControl(h, fsctlDeleteReparsePoint, (*byte)(unsafe.Pointer(&header)), uint32(size), nil, 0, &bytesReturned, nil)
	if err != nil {
		return fmt.Errorf("unable to delete reparse point: %w", err)
	}
	return nil
}

// DeleteJunctionData implements the deleteJunctionData contract of
// spec.md §4.3.
func DeleteJunctionData(path string) error {
	return deleteReparsePoint(path, ioReparseTagMountPoint)
}

// DeleteSymlinkData implements the deleteSymlinkData contract of
// spec.md §4.3.
func DeleteSymlinkData(path string) error {
	return deleteReparsePoint(path, ioReparseTagSymlink)
}

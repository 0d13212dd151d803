//go:build windows

package reparse

// Reparse tags and FSCTL codes are defined locally rather than sourced from
// golang.org/x/sys/windows, matching the pattern used by the reference
// reparse-point code surveyed for this package (adaptations of Go's
// internal/syscall/windows/reparse_windows.go that likewise hardcode these
// values rather than assume export from a particular dependency version).
const (
	ioReparseTagMountPoint = 0xA0000003
	ioReparseTagSymlink    = 0xA000000C

	symlinkFlagRelative = 0x1

	fsctlSetReparsePoint = 0x000900A4
	fsctlGetReparsePoint = 0x000900A8
	fsctlDeleteReparsePoint = 0x000900AC

	maxReparseDataBufferSize = 16 * 1024
)

// reparseDataBufferHeader is the common header shared by all
// REPARSE_DATA_BUFFER layouts.
type reparseDataBufferHeader struct {
	ReparseTag        uint32
	ReparseDataLength uint16
	Reserved          uint16
}

// mountPointReparseBuffer is the MountPointReparseBuffer member of
// REPARSE_DATA_BUFFER, used for junctions.
type mountPointReparseBuffer struct {
	SubstituteNameOffset uint16
	SubstituteNameLength uint16
	PrintNameOffset      uint16
	PrintNameLength      uint16
	PathBuffer           [1]uint16
}

// symbolicLinkReparseBuffer is the SymbolicLinkReparseBuffer member of
// REPARSE_DATA_BUFFER, used for symbolic links.
type symbolicLinkReparseBuffer struct {
	SubstituteNameOffset uint16
	SubstituteNameLength uint16
	PrintNameOffset      uint16
	PrintNameLength      uint16
	Flags                uint32
	PathBuffer           [1]uint16
}

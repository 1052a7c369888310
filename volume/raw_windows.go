//go:build windows

package volume

import (
	"fmt"
	"io"
	"unsafe"

	"golang.org/x/sys/windows"

	"clearfatdirty/dirtybit"
)

const (
	FSCTL_LOCK_VOLUME     = 0x90018
	FSCTL_DISMOUNT_VOLUME = 0x90020
)

// FILE_INFO_BY_HANDLE_CLASS value for FILE_STORAGE_INFO.
const fileStorageInfoClass = 16

type fileStorageInfo struct {
	LogicalBytesPerSector                                 uint32
	PhysicalBytesPerSectorForAtomicity                    uint32
	PhysicalBytesPerSectorForPerformance                  uint32
	FileSystemEffectivePhysicalBytesPerSectorForAtomicity uint32
	Flags                                                 uint32
	ByteOffsetForSectorAlignment                          uint32
	ByteOffsetForPartitionAlignment                       uint32
}

// Raw is a volume opened through its \\.\X: device path.
type Raw struct {
	h    windows.Handle
	path string
}

// OpenRaw opens a volume for reading and writing. Other processes may keep
// reading and writing it; exclusivity is up to Lock.
func OpenRaw(path string) (dirtybit.Volume, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}

	h, err := windows.CreateFile(
		p,
		windows.GENERIC_READ|windows.GENERIC_WRITE,
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		0,
		0,
	)
	if err != nil {
		return nil, fmt.Errorf("cannot open volume %s (may need admin privileges): %w", path, err)
	}

	return &Raw{h: h, path: path}, nil
}

func (r *Raw) fsctl(code uint32) error {
	var bytesReturned uint32

	return windows.DeviceIoControl(r.h, code, nil, 0, nil, 0, &bytesReturned, nil)
}

// Lock fails while any file on the volume is open. The lock is released by
// Close.
func (r *Raw) Lock() bool {
	return r.fsctl(FSCTL_LOCK_VOLUME) == nil
}

// FilesystemLabel returns the filesystem name, e.g. "FAT32" or "NTFS". The
// buffer only has room for the short names this tool cares about; a failed
// or truncated query leaves a name that matches neither.
func (r *Raw) FilesystemLabel() string {
	var name [8]uint16

	_ = windows.GetVolumeInformationByHandle(r.h, nil, 0, nil, nil, nil, &name[0], uint32(len(name)))

	return windows.UTF16ToString(name[:])
}

// PhysicalSectorSize reports PhysicalBytesPerSectorForAtomicity. The disk
// geometry ioctl would only give the logical size.
func (r *Raw) PhysicalSectorSize() (int, error) {
	var info fileStorageInfo

	err := windows.GetFileInformationByHandleEx(
		r.h,
		fileStorageInfoClass,
		(*byte)(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)),
	)
	if err != nil {
		return 0, fmt.Errorf("storage info for %s: %w", r.path, err)
	}

	return int(info.PhysicalBytesPerSectorForAtomicity), nil
}

func (r *Raw) ReadAt(p []byte, off int64) (int, error) {
	if _, err := windows.Seek(r.h, off, io.SeekStart); err != nil {
		return 0, err
	}

	var n uint32
	err := windows.ReadFile(r.h, p, &n, nil)

	return int(n), err
}

func (r *Raw) WriteAt(p []byte, off int64) (int, error) {
	if _, err := windows.Seek(r.h, off, io.SeekStart); err != nil {
		return 0, err
	}

	var n uint32
	err := windows.WriteFile(r.h, p, &n, nil)

	return int(n), err
}

// Dismount lets Windows remount the volume and pick up the cleared flag.
func (r *Raw) Dismount() error {
	return r.fsctl(FSCTL_DISMOUNT_VOLUME)
}

func (r *Raw) Close() error {
	return windows.CloseHandle(r.h)
}

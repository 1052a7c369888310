//go:build linux

package volume

import (
	"fmt"

	"github.com/siderolabs/go-blockdevice/v2/blkid"
	"github.com/siderolabs/go-blockdevice/v2/block"

	"clearfatdirty/dirtybit"
)

// BlockDevice is a partition opened through its device node, e.g. /dev/sdb1.
type BlockDevice struct {
	bd   *block.Device
	path string
}

// OpenBlockDevice opens a block device for reading and writing.
func OpenBlockDevice(path string) (dirtybit.Volume, error) {
	bd, err := block.NewFromPath(path, block.OpenForWrite())
	if err != nil {
		return nil, fmt.Errorf("failed to open blockdevice %s: %w", path, err)
	}

	return &BlockDevice{bd: bd, path: path}, nil
}

// Lock takes a non-blocking exclusive lock on the device, the same lock udev
// and systemd-repart honour. Close releases it.
func (d *BlockDevice) Lock() bool {
	return d.bd.TryLock(true) == nil
}

// foreignFilesystem reports whether blkid identified a filesystem that is
// neither FAT nor unknown. blkid has no exFAT prober yet, so exFAT volumes
// normally come back unnamed; "exfat" is accepted for when one is added.
func foreignFilesystem(blkidName string) bool {
	switch blkidName {
	case "", "vfat", "exfat":
		return false
	default:
		return true
	}
}

// FilesystemLabel asks blkid first so a volume it recognizes as something
// else is rejected, then tells FAT32 from FAT12/16 by the boot sector.
func (d *BlockDevice) FilesystemLabel() string {
	info, err := blkid.Probe(d.bd.File(), blkid.WithSkipLocking(true))
	if err == nil && foreignFilesystem(info.Name) {
		return info.Name
	}

	label, err := ProbeLabel(d.bd.File())
	if err != nil {
		return ""
	}

	return label
}

// PhysicalSectorSize queries BLKPBSZGET.
func (d *BlockDevice) PhysicalSectorSize() (int, error) {
	return physicalSectorSize(d.bd.File())
}

func (d *BlockDevice) ReadAt(p []byte, off int64) (int, error) {
	return d.bd.File().ReadAt(p, off)
}

// WriteAt writes and flushes the device cache before returning.
func (d *BlockDevice) WriteAt(p []byte, off int64) (int, error) {
	n, err := d.bd.File().WriteAt(p, off)
	if err != nil {
		return n, err
	}

	return n, d.bd.File().Sync()
}

// Dismount is not supported: unmounting on Linux does not remount, so the
// volume is left for the operator to remount.
func (d *BlockDevice) Dismount() error {
	return fmt.Errorf("dismount %s: %w", d.path, ErrNotSupported)
}

func (d *BlockDevice) Close() error {
	return d.bd.Close()
}

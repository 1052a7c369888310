// Package volume opens raw volumes for the dirty bit pipeline: Windows drive
// letters, disk image files and Linux block devices.
package volume

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrNotSupported is returned for operations the platform or backend cannot do.
var ErrNotSupported = errors.New("not supported")

// Labels as Windows reports them for the same volumes.
const (
	LabelFAT32 = "FAT32"
	LabelExFAT = "exFAT"
)

const bootSignature uint16 = 0xAA55

// bootSector overlays the fields of a FAT32 or exFAT boot sector needed to
// tell the two apart.
type bootSector struct {
	JmpBoot     [3]byte
	OEMName     [8]byte // FileSystemName on exFAT
	BytsPerSec  uint16
	SecPerClus  uint8
	ResvdSecCnt uint16
	NumFATs     uint8
	RootEntCnt  uint16
	TotSec16    uint16
	Media       uint8
	FATSz16     uint16 // must be 0 for fat32
	_           [58]byte
	FilSysType  [8]byte // 0x52 on FAT32
	_           [420]byte
	Signature   uint16
}

// ProbeLabel reads the boot sector from r and returns LabelFAT32, LabelExFAT
// or "" for anything else.
func ProbeLabel(r io.ReaderAt) (string, error) {
	var bs bootSector

	if err := binary.Read(io.NewSectionReader(r, 0, 512), binary.LittleEndian, &bs); err != nil {
		return "", fmt.Errorf("cannot read boot sector: %w", err)
	}

	if bs.Signature != bootSignature {
		return "", nil
	}

	switch {
	case string(bs.OEMName[:]) == "EXFAT   ":
		return LabelExFAT, nil
	case string(bs.FilSysType[:]) == "FAT32   " && bs.FATSz16 == 0:
		return LabelFAT32, nil
	default:
		return "", nil
	}
}

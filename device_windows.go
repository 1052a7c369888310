//go:build windows

package main

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/windows"
)

func driveTypeString(t uint32) string {
	switch t {
	case windows.DRIVE_REMOVABLE:
		return "removable"
	case windows.DRIVE_FIXED:
		return "fixed"
	case windows.DRIVE_REMOTE:
		return "network"
	case windows.DRIVE_CDROM:
		return "cdrom"
	case windows.DRIVE_RAMDISK:
		return "ramdisk"
	default:
		return "unknown"
	}
}

func listMountedVolumes() ([]mountedVol, error) {
	var errs *multierror.Error

	out := []mountedVol{}

	for l := byte('A'); l <= byte('Z'); l++ {
		root := fmt.Sprintf("%c:\\", l)

		p, err := windows.UTF16PtrFromString(root)
		if err != nil {
			continue
		}

		typeCode := windows.GetDriveType(p)
		if typeCode == windows.DRIVE_UNKNOWN || typeCode == windows.DRIVE_NO_ROOT_DIR {
			continue
		}

		var fsName [windows.MAX_PATH + 1]uint16

		if err := windows.GetVolumeInformation(p, nil, 0, nil, nil, nil, &fsName[0], uint32(len(fsName))); err != nil {
			// empty card reader or optical drive
			if errors.Is(err, windows.ERROR_NOT_READY) {
				continue
			}

			errs = appendProbeError(errs, root, err)

			continue
		}

		var total uint64

		if err := windows.GetDiskFreeSpaceEx(p, nil, &total, nil); err != nil {
			errs = appendProbeError(errs, root, err)
		}

		out = append(out, mountedVol{
			MountPoint: root,
			Device:     fmt.Sprintf("%c: (%s)", l, driveTypeString(typeCode)),
			FSType:     windows.UTF16ToString(fsName[:]),
			SizeBytes:  int64(total),
		})
	}

	return out, errs.ErrorOrNil()
}

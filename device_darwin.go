//go:build darwin

package main

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

func bytesToStringDarwin(b []byte) string {
	n := 0
	for n < len(b) && b[n] != 0 {
		n++
	}

	return string(b[:n])
}

func listMountedVolumes() ([]mountedVol, error) {
	n, err := unix.Getfsstat(nil, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("getfsstat: %w", err)
	}

	buf := make([]unix.Statfs_t, n)

	n, err = unix.Getfsstat(buf, unix.MNT_NOWAIT)
	if err != nil {
		return nil, fmt.Errorf("getfsstat: %w", err)
	}

	out := make([]mountedVol, 0, n)

	for _, st := range buf[:n] {
		out = append(out, mountedVol{
			MountPoint: filepath.Clean(bytesToStringDarwin(st.Mntonname[:])),
			Device:     bytesToStringDarwin(st.Mntfromname[:]),
			FSType:     bytesToStringDarwin(st.Fstypename[:]),
			SizeBytes:  int64(st.Blocks) * int64(st.Bsize),
		})
	}

	return out, nil
}

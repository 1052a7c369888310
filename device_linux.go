//go:build linux

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sys/unix"
)

// listMountedVolumes parses /proc/self/mounts. Sizes are only looked up for
// FAT mounts so a hung network mount elsewhere cannot stall the listing.
func listMountedVolumes() ([]mountedVol, error) {
	b, err := os.ReadFile("/proc/self/mounts")
	if err != nil {
		return nil, err
	}

	var errs *multierror.Error

	out := []mountedVol{}

	for _, ln := range strings.Split(string(b), "\n") {
		// format: <src> <target> <fstype> <opts> ...
		fields := strings.Fields(ln)
		if len(fields) < 3 {
			continue
		}

		v := mountedVol{
			Device:     fields[0],
			MountPoint: filepath.Clean(unescapeMountField(fields[1])),
			FSType:     fields[2],
		}

		if isFATFilesystem(v.FSType) {
			var st unix.Statfs_t

			if err := unix.Statfs(v.MountPoint, &st); err != nil {
				errs = appendProbeError(errs, v.MountPoint, err)
			} else {
				v.SizeBytes = int64(st.Blocks) * int64(st.Bsize)
			}
		}

		out = append(out, v)
	}

	return out, errs.ErrorOrNil()
}

// unescapeMountField undoes the octal escaping of spaces, tabs, newlines and
// backslashes in mount paths.
func unescapeMountField(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+3 < len(s) && isOctal(s[i+1]) && isOctal(s[i+2]) && isOctal(s[i+3]) {
			sb.WriteByte((s[i+1]-'0')<<6 | (s[i+2]-'0')<<3 | (s[i+3] - '0'))
			i += 3

			continue
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

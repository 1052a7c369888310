//go:build unix

package volume

import (
	"os"

	"golang.org/x/sys/unix"
)

func tryLockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
}

//go:build !unix

package volume

import "os"

func tryLockFile(_ *os.File) error {
	return ErrNotSupported
}

//go:build !windows && !linux && !darwin

package main

import (
	"fmt"
	"runtime"
)

func listMountedVolumes() ([]mountedVol, error) {
	return nil, fmt.Errorf("unsupported OS: %s", runtime.GOOS)
}

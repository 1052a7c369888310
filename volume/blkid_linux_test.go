//go:build linux

package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForeignFilesystem(t *testing.T) {
	for name, foreign := range map[string]bool{
		"":      false,
		"vfat":  false,
		"ext4":  true,
		"xfs":   true,
		"swap":  true,
		"exfat": false,
	} {
		assert.Equal(t, foreign, foreignFilesystem(name), "%q", name)
	}
}

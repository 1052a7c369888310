package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

type mountedVol struct {
	MountPoint string
	Device     string
	FSType     string
	SizeBytes  int64
}

func newListCmd() *cobra.Command {
	var listAll bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mounted FAT32 and exFAT volumes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			vols, err := listMountedVolumes()

			var probeErrs *multierror.Error
			if err != nil && !errors.As(err, &probeErrs) {
				return err
			}

			if !listAll {
				vols = filterFAT(vols)
			}

			printVolumes(cmd.OutOrStdout(), vols)

			if probeErrs != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), color.RedString(probeErrs.Error()))
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&listAll, "all", false, "include volumes of every file system type")

	return cmd
}

// isFATFilesystem matches the type names Windows, Linux and macOS report for
// FAT32 and exFAT mounts. FAT12/16 show up as vfat/msdos too; the clear
// command rejects those after reading the boot sector.
func isFATFilesystem(fsType string) bool {
	switch strings.ToLower(fsType) {
	case "fat32", "exfat", "vfat", "msdos":
		return true
	default:
		return false
	}
}

func filterFAT(vols []mountedVol) []mountedVol {
	out := []mountedVol{}

	for _, v := range vols {
		if isFATFilesystem(v.FSType) {
			out = append(out, v)
		}
	}

	return out
}

func printVolumes(w io.Writer, vols []mountedVol) {
	fmt.Fprintln(w, "Mounted volumes:")

	if len(vols) == 0 {
		fmt.Fprintln(w, "  <none detected>")

		return
	}

	fmt.Fprintf(w, "  %-24s  %-10s  %-24s  %-8s\n", "Mount", "FS", "Device", "Size")

	for _, v := range vols {
		fmt.Fprintf(w, "  %-24s  %-10s  %-24s  %-8s\n", v.MountPoint, v.FSType, v.Device, humanize.Bytes(uint64(v.SizeBytes)))
	}
}

func appendProbeError(errs *multierror.Error, mount string, err error) *multierror.Error {
	errs = multierror.Append(errs, fmt.Errorf("%s: %w", mount, err))
	errs.ErrorFormat = func(es []error) string {
		lines := make([]string, 0, len(es))
		for _, e := range es {
			lines = append(lines, "  "+e.Error())
		}

		return fmt.Sprintf("%d volume(s) could not be read:\n%s", len(es), strings.Join(lines, "\n"))
	}

	return errs
}

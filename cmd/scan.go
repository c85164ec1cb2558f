// Package cmd provides command-line interface for directory scanning.
// This file contains the command that regenerates the RMENU LIST.INI file.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/rmenutools/pkg/rmenu"
	"github.com/spf13/cobra"
)

// scanCmd scans the game directories and regenerates LIST.INI.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan directories and regenerate the LIST.INI file",
	Long: `Scan the game directories under the data directory and regenerate
the LIST.INI file used by RMENU.

Each first-level directory (other than ./01/) may hold one image file.
The first file whose name contains .cdi, .img, .mdf or .iso is read and
its title, disc number, region, version and date are listed.

Output:
  - 01/BIN/RMENU/LIST.INI

Examples:
  rmenutools scan -d /mnt/sd_card
  rmenutools scan -d /mnt/sd_card --dry-run
  rmenutools scan -d /mnt/sd_card --iso --menu 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return fmt.Errorf("error getting dry-run flag: %w", err)
		}
		buildISO, err := cmd.Flags().GetBool("iso")
		if err != nil {
			return fmt.Errorf("error getting iso flag: %w", err)
		}

		processor, err := newProcessor()
		if err != nil {
			return err
		}

		statusf("Scanning for images...\n")
		report, err := processor.Scan()
		if err != nil {
			return fmt.Errorf("failed to scan %s: %w", dataDir, err)
		}

		if verbose || dryRun {
			if _, err := report.Catalog.WriteTo(os.Stdout); err != nil {
				return err
			}
		}
		if report.Catalog.Unreliable {
			statusf("WARNING: some directories are not numbered, run 'rmenutools rename' first\n")
		}
		for _, d := range report.Duplicates {
			statusf("WARNING: %s is a copy of %s\n", d.DirID, d.SameAs)
		}

		if dryRun {
			statusf("Dry run, LIST.INI not written\n")
			return nil
		}

		if err := processor.WriteList(report.Catalog); err != nil {
			return err
		}
		statusf("LIST.INI written: %s (%d games)\n", processor.Layout.ListPath(), len(report.Records))

		if buildISO {
			return runImageBuild(cmd, processor)
		}
		return nil
	},
}

// init initializes the scan command with its flags.
func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolP("dry-run", "n", false, "Print the list instead of writing LIST.INI")
	scanCmd.Flags().BoolP("iso", "i", false, "Build the RMENU .iso after writing LIST.INI")
	scanCmd.Flags().Var(&menuKind, "menu", "Menu interface: 1 (RMENU) or 2 (RMENU Kai)")
	scanCmd.Flags().String("tool", rmenu.DefaultTool, "ISO 9660 authoring tool")
}

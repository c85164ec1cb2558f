// Package cmd provides command-line interface for directory renaming.
// This file contains the command that moves game directories onto the
// numbered names RMENU addresses.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hansbonini/rmenutools/pkg/rmenu"
)

// renameReport is the YAML document written by --report.
type renameReport struct {
	Root    string             `yaml:"root"`
	DryRun  bool               `yaml:"dry_run"`
	Renames []rmenu.Assignment `yaml:"renames"`
}

// renameCmd renames non-numbered game directories.
var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Rename game directories to canonical numbered names",
	Long: `Rename game directories that are not already numbered (02..99,
100..998) to the lowest free numbers, in sorted name order.

Directories that already carry a number keep it. 01 is reserved for RMENU
and never assigned. Either every rename succeeds or none is kept.

Examples:
  rmenutools rename -d /mnt/sd_card --dry-run
  rmenutools rename -d /mnt/sd_card --report renames.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry-run")
		if err != nil {
			return fmt.Errorf("error getting dry-run flag: %w", err)
		}
		reportFile, err := cmd.Flags().GetString("report")
		if err != nil {
			return fmt.Errorf("error getting report flag: %w", err)
		}

		processor, err := newProcessor()
		if err != nil {
			return err
		}

		plan, err := processor.Rename(dryRun)
		if err != nil {
			return fmt.Errorf("failed to rename directories: %w", err)
		}

		for _, a := range plan {
			fmt.Printf("- %s -> %s\n", a.From, a.To)
		}
		if dryRun {
			statusf("Dry run, %d directories would be renamed\n", len(plan))
		} else {
			statusf("%d directories renamed\n", len(plan))
		}

		if reportFile != "" {
			return writeRenameReport(reportFile, renameReport{Root: dataDir, DryRun: dryRun, Renames: plan})
		}
		return nil
	},
}

func writeRenameReport(path string, report renameReport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)

	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return encoder.Close()
}

// init initializes the rename command with its flags.
func init() {
	rootCmd.AddCommand(renameCmd)

	renameCmd.Flags().BoolP("dry-run", "n", false, "Show the renames without applying them")
	renameCmd.Flags().String("report", "", "Write the old -> new mapping to a YAML file")
}

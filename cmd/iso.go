// Package cmd provides command-line interface for building the menu image.
package cmd

import (
	"fmt"

	"github.com/hansbonini/rmenutools/pkg"
	"github.com/hansbonini/rmenutools/pkg/rmenu"
	"github.com/spf13/cobra"
)

// menuKind is shared by the iso and scan commands.
var menuKind = rmenu.MenuClassic

// isoCmd builds RMENU.iso from an existing LIST.INI.
var isoCmd = &cobra.Command{
	Use:   "iso",
	Short: "Create the RMENU .iso file",
	Long: `Use a pre-existing LIST.INI file found in 01/BIN/RMENU/ and generate
the RMENU .iso file in 01/.

The selected menu binary is copied to 0.BIN and mkisofs is run with the
Saturn volume descriptors and IP.BIN as the system area.

Menu types:
  1    the traditional RMENU interface
  2    the replacement RMENU Kai interface

Example:
  rmenutools iso -d /mnt/sd_card
  rmenutools iso -d /mnt/sd_card --menu 2`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		processor, err := newProcessor()
		if err != nil {
			return err
		}
		return runImageBuild(cmd, processor)
	},
}

func runImageBuild(cmd *cobra.Command, processor *pkg.MenuProcessor) error {
	tool, err := cmd.Flags().GetString("tool")
	if err != nil {
		return fmt.Errorf("error getting tool flag: %w", err)
	}

	statusf("Menu type:\t%s\n", menuKind.String())
	if err := processor.BuildImage(cmd.Context(), menuKind, tool); err != nil {
		return fmt.Errorf("failed to build RMENU image: %w", err)
	}

	statusf("RMENU image created: %s\n", processor.Layout.ImagePath())
	return nil
}

// init initializes the iso command with its flags.
func init() {
	rootCmd.AddCommand(isoCmd)

	isoCmd.Flags().Var(&menuKind, "menu", "Menu interface: 1 (RMENU) or 2 (RMENU Kai)")
	isoCmd.Flags().String("tool", rmenu.DefaultTool, "ISO 9660 authoring tool")
}

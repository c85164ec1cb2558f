// Package cmd provides command-line interface functionality for RMenuTools.
// RMenuTools scans a Rhea/Phoebe SD card of SEGA Saturn images, generates
// the RMENU LIST.INI file and builds the menu image.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/hansbonini/rmenutools/pkg"
	"github.com/hansbonini/rmenutools/pkg/common"
	"github.com/hansbonini/rmenutools/pkg/saturn"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
)

// rootCmd represents the base command when called without any subcommands.
// It provides the main entry point for the RMenuTools application.
var rootCmd = &cobra.Command{
	Use:   "rmenutools",
	Short: "RMENU list.ini and .iso generator for the SEGA Saturn",
	Long: `RMenuTools - RMENU list.ini and .iso generator for the SEGA Saturn
Rhea/Phoebe optical drive emulator.

Currently supports:
  - DiscJuggler (.cdi) and CloneCD (.img) images
  - Alcohol 120% (.mdf) and plain (.iso) images
  - Renaming game directories to the numbered names RMENU expects
  - Building the RMENU boot image with mkisofs

Examples:
  rmenutools scan -d /mnt/sd_card
  rmenutools scan -d /mnt/sd_card --iso
  rmenutools rename -d /mnt/sd_card --dry-run
  rmenutools iso -d /mnt/sd_card --menu 2
  rmenutools inspect /mnt/sd_card/02/game.cdi

Use 'rmenutools [command] --help' for more information about a command.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		common.SetVerboseMode(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main() and serves as the entry point for command execution.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(2)
	}
}

// init initializes the root command with flags shared by every subcommand.
func init() {
	rootCmd.PersistentFlags().StringVarP(&dataDir, "dir", "d", "", "Directory where your Saturn images and the RMENU ./01/ directory are located")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable extra debug output (probed and read byte offsets)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML signature table replacing the built-in offsets")
}

// loadTable returns the signature table selected by --config.
func loadTable() (*saturn.Table, error) {
	if configFile == "" {
		return saturn.DefaultTable(), nil
	}

	file, err := os.Open(configFile)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToLoadTable, err)
	}
	defer file.Close()

	table, err := saturn.LoadTable(file)
	if err != nil {
		return nil, common.FormatError(common.ErrFailedToLoadTable, fmt.Errorf("%s: %w", configFile, err))
	}
	return table, nil
}

// newProcessor validates --dir and the menu installation and returns a
// processor for it.
func newProcessor() (*pkg.MenuProcessor, error) {
	if dataDir == "" {
		return nil, fmt.Errorf("you must set the data directory with the --dir option")
	}

	table, err := loadTable()
	if err != nil {
		return nil, err
	}

	processor := pkg.NewMenuProcessor(dataDir, table)

	statusf("Dir:\t\t%s\n", dataDir)
	statusf("RMENU:\t\t%s\n", processor.Layout.ReservedPath())
	statusf("Checking data dir and RMENU files...\n")
	if err := processor.Preflight(); err != nil {
		return nil, err
	}
	statusf("- OK\n")

	return processor, nil
}

// Package cmd provides command-line interface for single image inspection.
package cmd

import (
	"fmt"
	"os"

	"github.com/hansbonini/rmenutools/pkg"
	"github.com/hansbonini/rmenutools/pkg/saturn"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// inspectCmd reports what the scanner would extract from one image.
var inspectCmd = &cobra.Command{
	Use:   "inspect [image_file]",
	Short: "Show the Saturn header fields of one image file",
	Long: `Detect the image type of a single file and show the fields that would
be written to LIST.INI. No menu directory is needed.

When verbose mode is enabled (-v), every probed and read offset is logged.

Example:
  rmenutools inspect -v /mnt/sd_card/02/game.cdi`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		result, err := pkg.NewMenuProcessor("", table).Inspect(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("File:\t\t%s\n", args[0])
		fmt.Printf("Format:\t\t%s (%s)\n", result.Format, result.Format.Family())
		if result.Volume != nil {
			fmt.Printf("System ID:\t%s\n", result.Volume.SystemID)
			fmt.Printf("Volume ID:\t%s\n", result.Volume.VolumeID)
			fmt.Printf("Blocks:\t\t%d\n", result.Volume.Blocks)
		}
		if result.Variant == nil {
			fmt.Println("Signature:\tnot found")
			return nil
		}

		fmt.Printf("Signature:\ttype %d @ %d\n", result.Variant.ID, result.Variant.Offset)
		if result.Record.HeaderSum != 0 {
			fmt.Printf("Header hash:\t%016x\n", result.Record.HeaderSum)
		}
		for _, f := range saturn.Fields() {
			value := result.Record.Fields[f]
			switch value.Kind {
			case saturn.ValueAbsent:
				fmt.Printf("%-8s\t(not supported on this image type)\n", f)
			case saturn.ValueEmpty:
				fmt.Printf("%-8s\t(undecodable)\n", f)
			case saturn.ValueRaw:
				fmt.Printf("%-8s\t% X (raw)\n", f, value.Raw)
			default:
				fmt.Printf("%-8s\t%s\n", f, value.Text)
			}
		}
		return nil
	},
}

// tableCmd prints the signature table in YAML, ready to be edited and
// passed back with --config.
var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the signature table as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		encoder := yaml.NewEncoder(os.Stdout)
		encoder.SetIndent(2)
		if err := encoder.Encode(table); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		return encoder.Close()
	},
}

// init registers the inspection commands.
func init() {
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(tableCmd)
}

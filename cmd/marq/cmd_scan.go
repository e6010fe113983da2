package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marqlang/marq/format"
	"github.com/marqlang/marq/scan"
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	var outputFormat string
	var htmlMode bool

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Scan a template and print its event stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			var opts []scan.Option
			if htmlMode || filepath.Ext(path) == ".html" {
				opts = append(opts, scan.WithHTMLMode())
			}

			events, scanErr := format.Record(string(data), opts...)

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout)
			case "lines":
				encoder = format.NewLineEncoder(os.Stdout)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(events); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if scanErr != nil {
				return fmt.Errorf("scan %s: %w", path, scanErr)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, lines)")
	cmd.Flags().BoolVar(&htmlMode, "html", false, "scan in bracket mode regardless of file extension")

	return cmd
}

package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/marqlang/marq/check"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Check templates and report scan errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var diagnostics []check.Diagnostic
			var failures []string

			for _, path := range args {
				info, err := os.Stat(path)
				if err != nil {
					return fmt.Errorf("stat %s: %w", path, err)
				}

				var d []check.Diagnostic
				var errs []string
				if info.IsDir() {
					d, errs = check.CheckDirectory(path, workers)
				} else {
					d, errs = check.CheckFiles([]string{path}, workers)
				}
				diagnostics = append(diagnostics, d...)
				failures = append(failures, errs...)
			}

			for _, f := range failures {
				fmt.Fprintln(os.Stderr, f)
			}
			for _, d := range diagnostics {
				fmt.Println(d.String())
			}

			if len(failures) > 0 {
				return fmt.Errorf("%d file(s) could not be checked", len(failures))
			}
			if len(diagnostics) > 0 {
				return fmt.Errorf("%d problem(s) found", len(diagnostics))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "number of files checked concurrently")

	return cmd
}

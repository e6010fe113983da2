package main

import (
	"github.com/marqlang/marq/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

func newLSPCmd() *cobra.Command {
	var verbose int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the language server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbose, nil)
			return lsp.NewServer(version).RunStdio()
		},
	}

	cmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity")

	return cmd
}

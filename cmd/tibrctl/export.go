package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pkt.systems/pslog"
)

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export <project-dir>",
		Short: "Render a project's markdown and diagrams to PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.Close()

			pdf, err := a.ExportMarkdown(args[0])
			if err != nil {
				return err
			}
			pslog.Ctx(cmd.Context()).Info("export wrote", "path", pdf)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), pdf)
			return err
		},
	}
}

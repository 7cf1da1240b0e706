package main

import (
	"github.com/spf13/cobra"
)

// newRootCmd 根命令；不带子命令时等同于 serve
func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "gradesheets",
		Short: "Split a student roster into per-grader grading sheets",
		Long: `gradesheets splits an uploaded roster among graders and produces
one grading spreadsheet per grader plus a document of identifier ranges.

Run without a subcommand to start the local web interface.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          serve.RunE,
	}
	root.Flags().AddFlagSet(serve.Flags())

	root.AddCommand(serve, newGenerateCmd(), newSampleCmd(), newConfigCmd())
	return root
}

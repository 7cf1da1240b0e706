package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gradesheets/internal/service/excel"
)

func newSampleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write the sample roster workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, _ := cmd.Flags().GetString("out")

			f, err := excel.SampleRoster()
			if err != nil {
				return err
			}
			defer f.Close()

			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("save %s: %w", out, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("out", excel.SampleFileName, "output file")
	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sarchlab/discolight/datarecording"
)

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <file.sqlite3>",
		Short: "Summarize a recorded run.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reader, err := datarecording.NewReader(args[0])
			if err != nil {
				return err
			}
			defer reader.Close()

			summary, err := datarecording.Summarize(cmd.Context(), reader)
			if err != nil {
				return err
			}

			return summary.Write(cmd.OutOrStdout())
		},
	}
}

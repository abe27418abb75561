package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/formatter"
)

var historyOutputFile string

func newHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Print every text scored so far",
		Long: `Fetch the scoring history from the analysis service and print it in
service order, followed by a summary in the json and markdown formats.

Examples:
  textpulse history
  textpulse history --output csv --output-file history.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			history, err := fetchHistory(ctx)
			if err != nil {
				return err
			}

			report := &formatter.Report{History: history, GeneratedAt: time.Now()}
			return writeReport(cmd.OutOrStdout(), report, historyOutputFile)
		},
	}

	cmd.Flags().StringVar(&historyOutputFile, "output-file", "", "save output to file instead of stdout")
	return cmd
}

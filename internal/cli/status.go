package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/emoji"
)

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check that the analysis service is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(newLogger())
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			if err := client.Ping(ctx); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "%s Service at %s is not reachable\n", emoji.GetEmoji("error"), client.BaseURL())
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Service at %s is up\n", emoji.GetEmoji("success"), client.BaseURL())
			return nil
		},
	}
}

package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/emoji"
	"github.com/yildizm/textpulse/internal/session"
)

var clearYes bool

// linePrompter asks on a terminal-like stream. Only "y" or "yes" confirms.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) Alert(message string) {
	fmt.Fprintf(p.out, "%s %s\n", emoji.GetEmoji("warning"), message)
}

func (p *linePrompter) Confirm(message string) bool {
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	answer, err := p.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

func newClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete the whole scoring history",
		Long: `Delete every stored analysis from the service. Asks for confirmation
unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var prompter session.Prompter = newLinePrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			if clearYes {
				prompter = session.Confirmed
			}

			if !prompter.Confirm(session.MsgConfirmClear) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing cleared.")
				return nil
			}

			client, err := newClient(newLogger())
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			if err := client.Clear(ctx); err != nil {
				return fmt.Errorf("failed to clear data: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s History cleared.\n", emoji.GetEmoji("trash"))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

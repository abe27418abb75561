package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/formatter"
	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

var (
	analyzeWithHistory bool
	analyzeOutputFile  string
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text]",
		Short: "Score a text",
		Long: `Send a text to the analysis service and print its gibberish and emotion scores.

If no text is given as arguments, reads it from stdin. The text is sent verbatim;
it must not be empty and must not exceed input.max_length characters.

Examples:
  textpulse analyze "what a lovely day"
  echo "asdkj qwe zxc" | textpulse analyze --output json
  textpulse analyze --history "hello again"`,
		RunE: runAnalyze,
	}

	cmd.Flags().BoolVar(&analyzeWithHistory, "history", false, "also print the updated history")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "save output to file instead of stdout")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	text, err := readText(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg := GetGlobalConfig()
	if err := session.ValidateLength(text, cfg.Input.MaxLength); err != nil {
		return err
	}
	if err := session.ValidateSubmission(text); err != nil {
		return err
	}

	client, err := newClient(newLogger())
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	result, err := client.Score(ctx, text)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := &formatter.Report{Result: result, GeneratedAt: time.Now()}
	if analyzeWithHistory {
		if report.History, err = client.ListLogs(ctx); err != nil {
			return fmt.Errorf("failed to fetch history: %w", err)
		}
	}

	return writeReport(cmd.OutOrStdout(), report, analyzeOutputFile)
}

// readText joins the arguments, or reads stdin when there are none.
// A single trailing newline from stdin is not part of the text.
func readText(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// fetchHistory loads the history with the configured client
func fetchHistory(ctx context.Context) ([]scoring.LogEntry, error) {
	client, err := newClient(newLogger())
	if err != nil {
		return nil, err
	}
	history, err := client.ListLogs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	return history, nil
}

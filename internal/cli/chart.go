package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/chart"
	"github.com/yildizm/textpulse/internal/emoji"
	"github.com/yildizm/textpulse/internal/session"
)

var (
	chartOut    string
	chartFormat string
	chartTitle  string
)

func newChartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Export the score trend as an image",
		Long: `Render the gibberish and emotion scores of the whole history against entry id
as a PNG or SVG image. The y-axis always spans 0 to 1.

The format is taken from --format, then from the file extension, then from the
configuration (chart.format).

Examples:
  textpulse chart --out trend.png
  textpulse chart --out trend.svg --title "Support inbox"`,
		Args: cobra.NoArgs,
		RunE: runChart,
	}

	cmd.Flags().StringVar(&chartOut, "out", "", "output image path (required)")
	cmd.Flags().StringVarP(&chartFormat, "format", "f", "", "image format (png, svg)")
	cmd.Flags().StringVar(&chartTitle, "title", "", "chart title")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	format, err := resolveChartFormat(chartFormat, chartOut, cfg.Chart.Format)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	history, err := fetchHistory(ctx)
	if err != nil {
		return err
	}

	opts := chart.DefaultOptions()
	opts.Width, opts.Height = cfg.Chart.Width, cfg.Chart.Height
	if chartTitle != "" {
		opts.Title = chartTitle
	}

	var buf bytes.Buffer
	if err := chart.Render(&buf, history, format, opts); err != nil {
		if errors.Is(err, chart.ErrNoData) {
			return errors.New(session.MsgNoChartData)
		}
		return fmt.Errorf("failed to render chart: %w", err)
	}

	if err := os.WriteFile(chartOut, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write chart: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Chart with %d entries saved to %s\n", emoji.GetEmoji("chart"), len(history), chartOut)
	return nil
}

// resolveChartFormat prefers the flag, then the file extension, then the config
func resolveChartFormat(flag, path, configured string) (chart.Format, error) {
	if flag != "" {
		return chart.ParseFormat(flag)
	}
	if format, err := chart.FormatFromPath(path); err == nil {
		return format, nil
	}
	return chart.ParseFormat(configured)
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/chart"
	"github.com/yildizm/textpulse/internal/emoji"
	"github.com/yildizm/textpulse/internal/monitor"
	"github.com/yildizm/textpulse/internal/session"
	"github.com/yildizm/textpulse/internal/web"
)

var serveAddr string

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web dashboard",
		Long: `Serve the dashboard in a browser: an input form with a character counter,
the latest result, the score trend chart and the history table. Service call
counts and latencies are served as JSON on /metrics.

Examples:
  textpulse serve
  textpulse serve --addr 127.0.0.1:9000`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.address)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Address
	}

	log := newLogger()
	client, err := newClient(log)
	if err != nil {
		return err
	}
	metrics := monitor.New()
	ctrl := session.NewController(monitor.Track(client, metrics), cfg.Input.MaxLength, log)

	srv, err := web.NewServer(ctrl, web.Options{
		Mode:       cfg.Server.Mode,
		WarnLength: cfg.Input.WarnLength,
		Chart: chart.Options{
			Width:  cfg.Chart.Width,
			Height: cfg.Chart.Height,
			Title:  chart.DefaultOptions().Title,
		},
		Metrics: metrics,
	}, log)
	if err != nil {
		return fmt.Errorf("failed to build dashboard: %w", err)
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	// a failure is only logged, the next submit reloads the history
	ctrl.LoadHistory(ctx)

	fmt.Fprintf(cmd.OutOrStdout(), "%s Dashboard on http://%s (ctrl+c to stop)\n", emoji.GetEmoji("server"), displayAddr(addr))
	return srv.ListenAndServe(ctx, addr)
}

// displayAddr turns ":8080" into "localhost:8080"
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}

package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/ui"
)

func newUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Start the interactive terminal UI",
		Long: `Start the interactive terminal UI.

Type text in the input box and press ctrl+s to score it. The trend chart and
the history table below it follow the service history; press tab to move the
cursor through the entries and see each one in full.

Diagnostics are written to the log file from the configuration (output.log_file)
while the UI owns the terminal.`,
		Args: cobra.NoArgs,
		RunE: runUI,
	}
}

func runUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	logPath := cfg.Output.LogFile
	if logPath == "" {
		logPath = filepath.Join(os.TempDir(), "textpulse.log")
	}
	// #nosec G304 - path comes from the user's own configuration
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		_ = logFile.Close()
	}()

	log := newLogger()
	log.SetOutput(logFile)

	ctrl, err := newController(log)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	return ui.Run(ctx, ctrl, ui.Options{
		WarnLength: cfg.Input.WarnLength,
		Theme:      cfg.Output.Theme,
		Logger:     log,
	})
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yildizm/textpulse/internal/config"
	"github.com/yildizm/textpulse/internal/emoji"
	"github.com/yildizm/textpulse/internal/logger"
	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
	"github.com/yildizm/textpulse/internal/ui"
)

var (
	cfgFile   string
	verbose   bool
	noColor   bool
	noEmoji   bool
	outputFmt string
	endpoint  string

	globalConfig *config.Config
)

// skipConfig marks commands that must run without a loadable configuration
const skipConfig = "skip-config"

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "textpulse",
		Short: "Gibberish and emotion scoring for short texts",
		Long: `textpulse sends short texts to a text analysis service and shows the
gibberish and emotion scores it returns, together with the history of every
text scored so far.

Without a subcommand it starts the interactive terminal UI. The same session
is available as a web dashboard (serve) and as one-shot commands for scripts.`,
		SilenceUsage:      true,
		PersistentPreRunE: setupGlobals,
		RunE:              runUI,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVarP(&endpoint, "endpoint", "e", "", "analysis service base URL")

	rootCmd.AddCommand(newUICommand())
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newClearCommand())
	rootCmd.AddCommand(newChartCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newStatusCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

// setupGlobals applies the presentation flags and loads the configuration
func setupGlobals(cmd *cobra.Command, args []string) error {
	// Auto-disable emojis on Windows if not explicitly set
	if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
		noEmoji = true
	}
	emoji.SetEmojiDisabled(noEmoji)

	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipConfig] == "true" {
			return nil
		}
	}

	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ui.SetThemeByName(cfg.Output.Theme)
	globalConfig = cfg
	return nil
}

// applyFlagOverrides gives explicit flags priority over every config source
func applyFlagOverrides(cfg *config.Config) {
	if verbose {
		cfg.Output.Verbose = true
	}
	if noColor {
		cfg.Output.ColorMode = "never"
	}
	if outputFmt != "" {
		cfg.Output.DefaultFormat = outputFmt
	}
	if endpoint != "" {
		cfg.Service.Endpoint = endpoint
	}
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Long:        "Display version number, build commit, date, and runtime information",
		Annotations: map[string]string{skipConfig: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "textpulse %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// GetGlobalConfig returns the configuration loaded for the running command
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose || GetGlobalConfig().Output.Verbose
}

func getOutputFormat() string {
	return GetGlobalConfig().Output.DefaultFormat
}

// colorEnabled resolves the auto color mode against NO_COLOR and the terminal
func colorEnabled() bool {
	switch GetGlobalConfig().Output.ColorMode {
	case "always":
		return true
	case "never":
		return false
	}
	if ui.IsColorDisabled() {
		return false
	}
	info, err := os.Stdout.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}

func newLogger() *logger.Logger {
	return logger.NewWithCallback("textpulse", isVerbose)
}

func newClient(log *logger.Logger) (*scoring.Client, error) {
	cfg := GetGlobalConfig()
	return scoring.New(&scoring.Config{
		BaseURL: cfg.Service.Endpoint,
		Timeout: cfg.Service.Timeout,
	}, log)
}

func newController(log *logger.Logger) (*session.Controller, error) {
	client, err := newClient(log)
	if err != nil {
		return nil, err
	}
	return session.NewController(client, GetGlobalConfig().Input.MaxLength, log), nil
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

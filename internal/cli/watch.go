package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-logparser"

	"github.com/yildizm/textpulse/internal/emoji"
	"github.com/yildizm/textpulse/internal/logger"
	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

var watchFormat string

// Scorer is the part of the service client the watcher needs
type Scorer interface {
	Score(ctx context.Context, text string) (*scoring.AnalysisResult, error)
}

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Score lines as they are appended to a file",
		Long: `Follow a file and score every line appended to it.

With --format raw (the default) each line is scored as it is. With auto, json,
logfmt or text the line is parsed as a log entry first and only its message is
scored. Lines that are empty or longer than input.max_length are skipped.
Press Ctrl+C to stop watching.

Examples:
  textpulse watch chat.txt
  textpulse watch --format json app.log`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVarP(&watchFormat, "format", "f", "", "line format (raw, auto, json, logfmt, text)")
	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	format := watchFormat
	if format == "" {
		format = cfg.Watch.Format
	}

	parser, err := newLineParser(format)
	if err != nil {
		return err
	}

	log := newLogger()
	client, err := newClient(log)
	if err != nil {
		return err
	}

	watcher, file, cleanup, err := setupFileWatcher(args[0])
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	scorer := &lineScorer{
		client:    client,
		parser:    parser,
		maxLength: cfg.Input.MaxLength,
		out:       cmd.OutOrStdout(),
		log:       log.WithComponent("watch"),
	}
	return runWatchLoop(ctx, watcher, file, scorer)
}

// newLineParser returns nil for raw lines
func newLineParser(format string) (logparser.Parser, error) {
	switch format {
	case "", "raw":
		return nil, nil
	case "auto":
		return logparser.New(), nil
	case "json":
		return logparser.NewWithFormat(logparser.FormatJSON), nil
	case "logfmt":
		return logparser.NewWithFormat(logparser.FormatLogfmt), nil
	case "text":
		return logparser.NewWithFormat(logparser.FormatText), nil
	default:
		return nil, fmt.Errorf("unknown format %s. Available formats: raw, auto, json, logfmt, text", format)
	}
}

// lineScorer scores the lines appended to a watched file
type lineScorer struct {
	client    Scorer
	parser    logparser.Parser
	maxLength int
	out       io.Writer
	log       *logger.Logger
}

// texts returns what should be scored for one line
func (s *lineScorer) texts(line string) []string {
	if s.parser == nil {
		return []string{line}
	}

	entries, err := s.parser.ParseString(line)
	if err != nil {
		s.log.Debug("failed to parse line: %v", err)
		return nil
	}

	texts := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Message != "" {
			texts = append(texts, entry.Message)
		}
	}
	return texts
}

// processNewLines scores every complete line available on r and returns how many were scored
func (s *lineScorer) processNewLines(ctx context.Context, r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	scored := 0
	for scanner.Scan() {
		for _, text := range s.texts(scanner.Text()) {
			if s.score(ctx, text) {
				scored++
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return scored, fmt.Errorf("scanner error: %w", err)
	}
	return scored, nil
}

func (s *lineScorer) score(ctx context.Context, text string) bool {
	if err := session.ValidateSubmission(text); err != nil {
		return false
	}
	if err := session.ValidateLength(text, s.maxLength); err != nil {
		s.log.Warn("skipping line: %v", err)
		return false
	}

	result, err := s.client.Score(ctx, text)
	if err != nil {
		s.log.ErrorWithFields("Error analyzing text", []logger.Field{logger.Error(err)})
		return false
	}

	fmt.Fprintf(s.out, "[%s] %s %s (%s)  %s %s (%s)  %s\n",
		time.Now().Format("15:04:05"),
		emoji.GetEmoji("gibberish"), result.Gibberish, session.FormatPercent(result.GibberishScore),
		emoji.GetEmoji("emotion"), result.Emotion, session.FormatPercent(result.EmotionScore),
		shorten(text, 60))
	return true
}

// shorten cuts s to n characters, marking the cut with "..."
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// cleanupFile safely closes file with error logging
func cleanupFile(file *os.File) {
	if err := file.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close file: %v\n", err)
	}
}

// createWatcher creates and configures a new file system watcher
func createWatcher(filename string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch file: %w", err)
	}

	return watcher, nil
}

// openWatchFile opens the file positioned at its end, so only new lines are read
func openWatchFile(filename string) (*os.File, error) {
	// #nosec G304 - path is validated by caller
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		cleanupFile(file)
		return nil, fmt.Errorf("failed to seek to end of file: %w", err)
	}

	return file, nil
}

// setupFileWatcher creates and configures file watcher
func setupFileWatcher(filename string) (*fsnotify.Watcher, *os.File, func(), error) {
	if err := validateWatchFilePath(filename); err != nil {
		return nil, nil, nil, fmt.Errorf("invalid file path: %w", err)
	}

	watcher, err := createWatcher(filename)
	if err != nil {
		return nil, nil, nil, err
	}

	file, err := openWatchFile(filename)
	if err != nil {
		cleanupWatcher(watcher)
		return nil, nil, nil, err
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", filename)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	cleanup := func() {
		cleanupWatcher(watcher)
		cleanupFile(file)
	}

	return watcher, file, cleanup, nil
}

// runWatchLoop scores new lines on every write until ctx is done
func runWatchLoop(ctx context.Context, watcher *fsnotify.Watcher, file *os.File, scorer *lineScorer) error {
	for {
		select {
		case <-ctx.Done():
			if isVerbose() {
				fmt.Fprintf(os.Stderr, "\nStopping watcher...\n")
			}
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if event.Op&fsnotify.Write != fsnotify.Write {
				continue
			}
			if _, err := scorer.processNewLines(ctx, file); err != nil {
				scorer.log.Warn("Error handling event: %v", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			scorer.log.Warn("Watcher error: %v", err)
		}
	}
}

// validateWatchFilePath validates that a file path is safe to watch
func validateWatchFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("cannot watch directory, must be a file")
	}

	return nil
}

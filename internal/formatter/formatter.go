package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/textpulse/internal/scoring"
)

// Report is what every formatter renders: the latest analysis, if any,
// and the scoring history in service order
type Report struct {
	Result      *scoring.AnalysisResult
	History     []scoring.LogEntry
	GeneratedAt time.Time
}

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// TableHeaders are the history columns shared by every tabular output
var TableHeaders = []string{"ID", "Text", "Gibberish Score", "Gibberish Type", "Emotion Score", "Emotion Type"}

// New returns the formatter for a named output format
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json, markdown or csv)", format)
	}
}

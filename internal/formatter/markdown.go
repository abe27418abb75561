package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/textpulse/internal/session"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Text Analysis Report\n\n")
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}

	if report.Result != nil {
		f.writeResult(&b, report)
	}
	f.writeSummary(&b, report)
	f.writeHistory(&b, report)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeResult(b *strings.Builder, report *Report) {
	r := report.Result
	b.WriteString("## Analysis Results\n\n")
	b.WriteString("| Classifier | Label | Score |\n")
	b.WriteString("|------------|-------|-------|\n")
	fmt.Fprintf(b, "| Gibberish | %s | %s |\n", escapeMarkdown(r.Gibberish), session.FormatPercent(r.GibberishScore))
	fmt.Fprintf(b, "| Emotion | %s | %s |\n\n", escapeMarkdown(r.Emotion), session.FormatPercent(r.EmotionScore))
}

func (f *markdownFormatter) writeSummary(b *strings.Builder, report *Report) {
	s := Summarize(report.History)
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(b, "- **Entries:** %d\n", s.Entries)
	if s.Entries > 0 {
		fmt.Fprintf(b, "- **Average gibberish score:** %s\n", session.FormatPercent(s.AvgGibberishScore))
		fmt.Fprintf(b, "- **Average emotion score:** %s\n", session.FormatPercent(s.AvgEmotionScore))
		fmt.Fprintf(b, "- **Most frequent emotion:** %s\n", escapeMarkdown(s.TopEmotionLabel))
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeHistory(b *strings.Builder, report *Report) {
	b.WriteString("## History\n\n")
	if len(report.History) == 0 {
		b.WriteString("_No entries._\n")
		return
	}

	b.WriteString("| " + strings.Join(TableHeaders, " | ") + " |\n")
	b.WriteString("|" + strings.Repeat("---|", len(TableHeaders)) + "\n")
	for _, entry := range report.History {
		row := HistoryRow(entry)
		for i := range row {
			row[i] = escapeMarkdown(singleLine(row[i]))
		}
		b.WriteString("| " + strings.Join(row, " | ") + " |\n")
	}
}

// escapeMarkdown keeps cell text from breaking the table
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/textpulse/internal/session"
)

const textColumnWidth = 40

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)

	if report.Result != nil {
		f.writeResult(&b, report)
	}

	f.writeHistory(&b, report)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Text Analysis"
	width := len(header)

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

// writeResult writes the analysis result as a tree with confidence bars
func (f *terminalFormatter) writeResult(b *strings.Builder, report *Report) {
	r := report.Result
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(strings.TrimSpace(symbol+" Analysis Results") + "\n")

	items := []termfmt.TreeItem{
		{
			Label: "Gibberish",
			Value: fmt.Sprintf("%s (%s)", r.Gibberish, session.FormatPercent(r.GibberishScore)),
			Children: []termfmt.TreeItem{
				{Label: termfmt.CreateConfidenceBar(r.GibberishScore, f.opts), Value: ""},
			},
		},
		{
			Label: "Emotion",
			Value: fmt.Sprintf("%s (%s)", r.Emotion, session.FormatPercent(r.EmotionScore)),
			Children: []termfmt.TreeItem{
				{Label: termfmt.CreateConfidenceBar(r.EmotionScore, f.opts), Value: ""},
			},
			Last: true,
		},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeHistory writes the history as an aligned table
func (f *terminalFormatter) writeHistory(b *strings.Builder, report *Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	fmt.Fprintf(b, "%s History (%d)\n", strings.TrimSpace(symbol), len(report.History))

	if len(report.History) == 0 {
		b.WriteString("No entries.\n")
		return
	}

	rows := make([][]string, 0, len(report.History)+1)
	rows = append(rows, TableHeaders)
	for _, entry := range report.History {
		row := HistoryRow(entry)
		row[1] = truncate(singleLine(row[1]), textColumnWidth)
		rows = append(rows, row)
	}

	// widths are display columns so wide runes keep the table aligned
	widths := make([]int, len(TableHeaders))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for i, row := range rows {
		cells := make([]string, len(row))
		for j, cell := range row {
			cells[j] = cell + strings.Repeat(" ", widths[j]-lipgloss.Width(cell))
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " ") + "\n")
		if i == 0 {
			total := len(widths)*2 - 2
			for _, w := range widths {
				total += w
			}
			b.WriteString(strings.Repeat("─", total) + "\n")
		}
	}
}

package components

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

// HistoryColumns lays out the history table for the given total width.
// The text column takes whatever the fixed columns leave over.
func HistoryColumns(width int) []table.Column {
	fixed := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Gibberish Score", Width: 15},
		{Title: "Gibberish Type", Width: 14},
		{Title: "Emotion Score", Width: 13},
		{Title: "Emotion Type", Width: 12},
	}

	used := 0
	for _, c := range fixed {
		used += c.Width + 2
	}
	textWidth := width - used - 2
	if textWidth < 12 {
		textWidth = 12
	}

	return []table.Column{
		fixed[0],
		{Title: "Text", Width: textWidth},
		fixed[1], fixed[2], fixed[3], fixed[4],
	}
}

// HistoryRows returns one table row per entry in history order
func HistoryRows(history []scoring.LogEntry) []table.Row {
	rows := make([]table.Row, 0, len(history))
	for _, entry := range history {
		rows = append(rows, table.Row{
			strconv.Itoa(entry.ID),
			strings.Join(strings.Fields(entry.Text), " "),
			session.FormatPercent(entry.GibberishScore),
			entry.Gibberish,
			session.FormatPercent(entry.EmotionScore),
			entry.Emotion,
		})
	}
	return rows
}

// Counter renders "<len>/<max>", highlighted once length exceeds warnAt
func Counter(length, maxLength, warnAt int, warn lipgloss.Style) string {
	text := strconv.Itoa(length) + "/" + strconv.Itoa(maxLength)
	if length > warnAt {
		return warn.Render(text)
	}
	return lipgloss.NewStyle().Foreground(axisColor).Render(text)
}

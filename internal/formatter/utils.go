package formatter

import (
	"strconv"
	"strings"

	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

// HistoryRow renders one entry as cells in TableHeaders order
func HistoryRow(entry scoring.LogEntry) []string {
	return []string{
		strconv.Itoa(entry.ID),
		entry.Text,
		session.FormatPercent(entry.GibberishScore),
		entry.Gibberish,
		session.FormatPercent(entry.EmotionScore),
		entry.Emotion,
	}
}

// singleLine flattens line breaks so one entry stays on one row
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "\r", " ")
}

// truncate shortens s to at most n characters, marking the cut with "..."
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

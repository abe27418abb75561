package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

const (
	// TooltipWidth is the outer width of a rendered tooltip, border included
	TooltipWidth = 42
	// tooltipTextLimit caps the entry text shown, in characters
	tooltipTextLimit = 120
)

// Tooltip renders the history entry with the given id, wrapped to
// TooltipWidth. An id that is not in history renders nothing.
func Tooltip(history []scoring.LogEntry, id int) string {
	entry, ok := session.LookupEntry(history, id)
	if !ok {
		return ""
	}

	label := lipgloss.NewStyle().Foreground(axisColor)
	lines := []string{
		label.Render("ID: ") + fmt.Sprintf("%d", entry.ID),
		label.Render("Text: ") + tooltipText(entry.Text),
		lipgloss.NewStyle().Foreground(gibberishColor).Render(
			fmt.Sprintf("Gibberish: %s (%s)", entry.Gibberish, session.FormatPercent(entry.GibberishScore))),
		lipgloss.NewStyle().Foreground(emotionColor).Render(
			fmt.Sprintf("Emotion: %s (%s)", entry.Emotion, session.FormatPercent(entry.EmotionScore))),
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(axisColor).
		Padding(0, 1).
		Width(TooltipWidth - 2).
		Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// tooltipText flattens whitespace and shortens long texts with "..."
func tooltipText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	r := []rune(text)
	if len(r) <= tooltipTextLimit {
		return text
	}
	return string(r[:tooltipTextLimit-3]) + "..."
}

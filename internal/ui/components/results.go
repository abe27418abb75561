package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

// ScoreCard shows one labelled score
type ScoreCard struct {
	Title string
	Label string
	Score float64
	Icon  string
	Color lipgloss.AdaptiveColor
	Width int
}

// NewScoreCard creates a new score card
func NewScoreCard(title, label string, score float64) *ScoreCard {
	return &ScoreCard{
		Title: title,
		Label: label,
		Score: score,
		Color: titleColor,
		Width: 28,
	}
}

// SetIcon sets the icon for the card
func (s *ScoreCard) SetIcon(icon string) *ScoreCard {
	s.Icon = icon
	return s
}

// SetColor sets the accent color of the card
func (s *ScoreCard) SetColor(color lipgloss.AdaptiveColor) *ScoreCard {
	s.Color = color
	return s
}

// Line is the plain "<Title>: <label> (<pct>)" form of the card
func (s *ScoreCard) Line() string {
	return fmt.Sprintf("%s: %s (%s)", s.Title, s.Label, session.FormatPercent(s.Score))
}

// Render renders the score card
func (s *ScoreCard) Render() string {
	line := lipgloss.NewStyle().Foreground(s.Color).Bold(true).Render(s.Line())
	if s.Icon != "" {
		line = s.Icon + " " + line
	}

	// width includes the padding, never wrap the score line
	width := max(s.Width, lipgloss.Width(line)+2)
	bar := lipgloss.NewStyle().Foreground(s.Color).Render(ScoreBar(s.Score, width-2))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(axisColor).
		Padding(0, 1).
		Width(width).
		Render(lipgloss.JoinVertical(lipgloss.Left, line, bar))
}

// ScoreBar draws score as a filled bar of the given width
func ScoreBar(score float64, width int) string {
	if width < 1 {
		return ""
	}
	filled := RowFor(score, width+1)
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}

// ResultsPanel shows the most recent analysis result
type ResultsPanel struct {
	Title  string
	Result *scoring.AnalysisResult
	Icons  [2]string
}

// NewResultsPanel creates a results panel for result, which may be nil
func NewResultsPanel(result *scoring.AnalysisResult) *ResultsPanel {
	return &ResultsPanel{Title: "Analysis Results", Result: result}
}

// Cards returns the gibberish and emotion cards
func (p *ResultsPanel) Cards() []*ScoreCard {
	if p.Result == nil {
		return nil
	}
	return []*ScoreCard{
		NewScoreCard("Gibberish", p.Result.Gibberish, p.Result.GibberishScore).
			SetIcon(p.Icons[0]).SetColor(gibberishColor),
		NewScoreCard("Emotion", p.Result.Emotion, p.Result.EmotionScore).
			SetIcon(p.Icons[1]).SetColor(emotionColor),
	}
}

// Render renders the panel, or nothing when there is no result
func (p *ResultsPanel) Render() string {
	cards := p.Cards()
	if len(cards) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(cards))
	for _, card := range cards {
		rendered = append(rendered, card.Render())
	}

	title := lipgloss.NewStyle().Foreground(titleColor).Bold(true).Render(p.Title)
	return lipgloss.JoinVertical(lipgloss.Left, title, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
}

package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/textpulse/internal/scoring"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	GeneratedAt time.Time               `json:"generated_at"`
	Result      *scoring.AnalysisResult `json:"result,omitempty"`
	History     []scoring.LogEntry      `json:"history"`
	Summary     *HistorySummary         `json:"summary"`
}

// HistorySummary aggregates the history
type HistorySummary struct {
	Entries           int     `json:"entries"`
	AvgGibberishScore float64 `json:"avg_gibberish_score"`
	AvgEmotionScore   float64 `json:"avg_emotion_score"`
	TopGibberishLabel string  `json:"top_gibberish_label,omitempty"`
	TopEmotionLabel   string  `json:"top_emotion_label,omitempty"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	history := report.History
	if history == nil {
		history = []scoring.LogEntry{}
	}

	output := &JSONOutput{
		GeneratedAt: report.GeneratedAt,
		Result:      report.Result,
		History:     history,
		Summary:     Summarize(history),
	}

	return json.MarshalIndent(output, "", "  ")
}

// Summarize computes averages and the most frequent labels of a history.
// Ties go to the label seen first.
func Summarize(history []scoring.LogEntry) *HistorySummary {
	s := &HistorySummary{Entries: len(history)}
	if len(history) == 0 {
		return s
	}

	gibberish := newLabelCounter()
	emotion := newLabelCounter()
	for _, entry := range history {
		s.AvgGibberishScore += entry.GibberishScore
		s.AvgEmotionScore += entry.EmotionScore
		gibberish.add(entry.Gibberish)
		emotion.add(entry.Emotion)
	}
	s.AvgGibberishScore /= float64(len(history))
	s.AvgEmotionScore /= float64(len(history))
	s.TopGibberishLabel = gibberish.top()
	s.TopEmotionLabel = emotion.top()

	return s
}

type labelCounter struct {
	order  []string
	counts map[string]int
}

func newLabelCounter() *labelCounter {
	return &labelCounter{counts: make(map[string]int)}
}

func (c *labelCounter) add(label string) {
	if label == "" {
		return
	}
	if _, seen := c.counts[label]; !seen {
		c.order = append(c.order, label)
	}
	c.counts[label]++
}

func (c *labelCounter) top() string {
	best := ""
	for _, label := range c.order {
		if best == "" || c.counts[label] > c.counts[best] {
			best = label
		}
	}
	return best
}

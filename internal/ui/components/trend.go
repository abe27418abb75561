package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

// NoDataMessage is shown in place of the chart when there is no history
const NoDataMessage = session.MsgNoChartData

// Series markers
const (
	GibberishMarker = "●"
	EmotionMarker   = "◆"
	OverlapMarker   = "◉"
)

var (
	gibberishColor = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF4444"}
	emotionColor   = lipgloss.AdaptiveColor{Light: "#0000CC", Dark: "#4D79FF"}
	axisColor      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	titleColor     = lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	cursorColor    = lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
)

const (
	yLabelWidth = 7 // "0.00 ┤"
	columnWidth = 3
	minRows     = 5
)

// TrendChart draws the gibberish and emotion scores of every history entry
// against its id on a character grid. The y-axis always spans [0,1].
type TrendChart struct {
	Title   string
	History []scoring.LogEntry
	Width   int
	Height  int

	// Cursor is the index of the highlighted entry, or -1 for none
	Cursor int
}

// NewTrendChart creates a chart with no cursor
func NewTrendChart(title string, history []scoring.LogEntry, width, height int) *TrendChart {
	return &TrendChart{
		Title:   title,
		History: history,
		Width:   width,
		Height:  height,
		Cursor:  -1,
	}
}

// Render renders the chart, or the placeholder when history is empty
func (t *TrendChart) Render() string {
	titleStyle := lipgloss.NewStyle().Foreground(titleColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(axisColor)

	content := []string{titleStyle.Render(t.Title), ""}
	if len(t.History) == 0 {
		content = append(content, mutedStyle.Render(NoDataMessage))
	} else {
		content = append(content, t.renderGrid(), t.renderAxis(), "", t.renderLegend())
	}

	return lipgloss.JoinVertical(lipgloss.Left, content...)
}

// Rows returns the number of plot rows, top row is 1.00 and bottom row 0.00
func (t *TrendChart) Rows() int {
	rows := t.Height - 6 // title, axis, labels, legend
	if rows < minRows {
		rows = minRows
	}
	return rows
}

// Capacity returns how many entries fit side by side
func (t *TrendChart) Capacity() int {
	n := (t.Width - yLabelWidth) / columnWidth
	if n < 1 {
		n = 1
	}
	return n
}

// Window returns the [start, end) range of visible entries. The window keeps
// the cursor in view and otherwise shows the most recent entries.
func (t *TrendChart) Window() (int, int) {
	total := len(t.History)
	capacity := t.Capacity()
	if total <= capacity {
		return 0, total
	}

	end := total
	if t.Cursor >= 0 && t.Cursor < total-capacity {
		end = t.Cursor + capacity
	}
	return end - capacity, end
}

// RowFor maps a score to a plot row, 0 being the bottom
func RowFor(score float64, rows int) int {
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return int(math.Round(score * float64(rows-1)))
}

func (t *TrendChart) renderGrid() string {
	rows := t.Rows()
	start, end := t.Window()

	gibStyle := lipgloss.NewStyle().Foreground(gibberishColor)
	emoStyle := lipgloss.NewStyle().Foreground(emotionColor)
	axisStyle := lipgloss.NewStyle().Foreground(axisColor)
	cursorStyle := lipgloss.NewStyle().Background(cursorColor)

	lines := make([]string, 0, rows)
	for row := rows - 1; row >= 0; row-- {
		var line strings.Builder
		value := float64(row) / float64(rows-1)
		line.WriteString(axisStyle.Render(fmt.Sprintf("%5.2f ┤", value)))

		for i := start; i < end; i++ {
			entry := t.History[i]
			gib := RowFor(entry.GibberishScore, rows) == row
			emo := RowFor(entry.EmotionScore, rows) == row

			cell := " "
			switch {
			case gib && emo:
				cell = OverlapMarker
			case gib:
				cell = gibStyle.Render(GibberishMarker)
			case emo:
				cell = emoStyle.Render(EmotionMarker)
			}
			cell = " " + cell + " "

			if i == t.Cursor {
				cell = cursorStyle.Render(cell)
			}
			line.WriteString(cell)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// renderAxis draws the x-axis with the first, last and highlighted ids
func (t *TrendChart) renderAxis() string {
	start, end := t.Window()
	axisStyle := lipgloss.NewStyle().Foreground(axisColor)

	span := (end - start) * columnWidth
	rule := strings.Repeat(" ", yLabelWidth-2) + "└" + strings.Repeat("─", span)

	labels := []rune(strings.Repeat(" ", yLabelWidth+span+4))
	place := func(i int) {
		id := strconv.Itoa(t.History[i].ID)
		pos := yLabelWidth - 1 + (i-start)*columnWidth + 1
		for j, r := range id {
			if pos+j < len(labels) {
				labels[pos+j] = r
			}
		}
	}
	place(start)
	place(end - 1)
	if t.Cursor >= start && t.Cursor < end {
		place(t.Cursor)
	}

	return axisStyle.Render(rule) + "\n" + axisStyle.Render(strings.TrimRight(string(labels), " "))
}

func (t *TrendChart) renderLegend() string {
	gib := lipgloss.NewStyle().Foreground(gibberishColor).Render(GibberishMarker + " gibberish_score")
	emo := lipgloss.NewStyle().Foreground(emotionColor).Render(EmotionMarker + " emotion_score")
	return gib + "   " + emo
}

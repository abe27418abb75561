// Package chart renders the score trend of a history as PNG or SVG.
package chart

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/yildizm/textpulse/internal/scoring"
)

// ErrNoData is returned when there is nothing to plot
var ErrNoData = errors.New("no data available to display the graph")

// Format is an image encoding
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// Series names as shown in the legend
const (
	GibberishSeries = "Gibberish Score"
	EmotionSeries   = "Emotion Score"
)

// maxLabelledTicks caps how many ids get their own x-axis label
const maxLabelledTicks = 20

var (
	gibberishColor = drawing.ColorFromHex("ff0000")
	emotionColor   = drawing.ColorFromHex("0000ff")
)

// Options controls the rendered image
type Options struct {
	Width  int
	Height int
	Title  string
}

// DefaultOptions returns the size used when none is configured
func DefaultOptions() Options {
	return Options{Width: 800, Height: 400, Title: "Score Trend"}
}

// ParseFormat accepts "png" or "svg" in any case
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("unsupported chart format: %s (use png or svg)", s)
	}
}

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer chart format from %q", path)
	}
	return ParseFormat(ext)
}

// Render draws gibberish and emotion scores against entry id, with the
// y-axis fixed to [0,1]
func Render(w io.Writer, history []scoring.LogEntry, format Format, opts Options) error {
	if len(history) == 0 {
		return ErrNoData
	}

	provider, err := rendererFor(format)
	if err != nil {
		return err
	}

	ch := build(history, opts)
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

func rendererFor(format Format) (gochart.RendererProvider, error) {
	switch format {
	case PNG:
		return gochart.PNG, nil
	case SVG:
		return gochart.SVG, nil
	default:
		return nil, fmt.Errorf("unsupported chart format: %s", format)
	}
}

func build(history []scoring.LogEntry, opts Options) gochart.Chart {
	if opts.Width <= 0 || opts.Height <= 0 {
		defaults := DefaultOptions()
		opts.Width, opts.Height = defaults.Width, defaults.Height
	}

	xs := make([]float64, len(history))
	gibberish := make([]float64, len(history))
	emotion := make([]float64, len(history))
	for i, entry := range history {
		xs[i] = float64(entry.ID)
		gibberish[i] = entry.GibberishScore
		emotion[i] = entry.EmotionScore
	}

	ch := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      xAxis(history),
		YAxis: gochart.YAxis{
			Name:  "Score",
			Range: &gochart.ContinuousRange{Min: 0, Max: 1},
			Ticks: []gochart.Tick{
				{Value: 0, Label: "0.00"},
				{Value: 0.25, Label: "0.25"},
				{Value: 0.5, Label: "0.50"},
				{Value: 0.75, Label: "0.75"},
				{Value: 1, Label: "1.00"},
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{Name: GibberishSeries, XValues: xs, YValues: gibberish, Style: lineStyle(gibberishColor)},
			gochart.ContinuousSeries{Name: EmotionSeries, XValues: xs, YValues: emotion, Style: lineStyle(emotionColor)},
		},
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}
	return ch
}

// xAxis spans the ids. A single entry is padded by one on each side so the
// range never collapses to zero width. go-chart derives the range from explicit
// ticks, so the padding gets unlabelled ticks too.
func xAxis(history []scoring.LogEntry) gochart.XAxis {
	lo, hi := history[0].ID, history[0].ID
	for _, entry := range history {
		if entry.ID < lo {
			lo = entry.ID
		}
		if entry.ID > hi {
			hi = entry.ID
		}
	}
	padded := lo == hi
	if padded {
		lo, hi = lo-1, hi+1
	}

	axis := gochart.XAxis{
		Name:  "Entry",
		Range: &gochart.ContinuousRange{Min: float64(lo), Max: float64(hi)},
		ValueFormatter: func(v interface{}) string {
			if f, ok := v.(float64); ok {
				return strconv.Itoa(int(f))
			}
			return ""
		},
	}

	if len(history) <= maxLabelledTicks {
		ticks := make([]gochart.Tick, 0, len(history)+2)
		if padded {
			ticks = append(ticks, gochart.Tick{Value: float64(lo)})
		}
		for _, entry := range history {
			ticks = append(ticks, gochart.Tick{Value: float64(entry.ID), Label: strconv.Itoa(entry.ID)})
		}
		if padded {
			ticks = append(ticks, gochart.Tick{Value: float64(hi)})
		}
		axis.Ticks = ticks
	}

	return axis
}

func lineStyle(color drawing.Color) gochart.Style {
	return gochart.Style{
		StrokeColor: color,
		StrokeWidth: 2,
		DotColor:    color,
		DotWidth:    3,
	}
}

// Package session holds the client-side presentation state of textpulse and
// the controller that keeps it in step with the analysis service.
package session

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yildizm/textpulse/internal/scoring"
)

// DefaultMaxLength is the input bound used when none is configured
const DefaultMaxLength = 1000

// User-facing notification texts
const (
	MsgEmptyText    = "Please enter text before submitting!"
	MsgConfirmClear = "Are you sure you want to clear all data?"
	MsgNoChartData  = "No data available to display the graph."
)

// TooLongMessage is the notification shown for an over-length edit
func TooLongMessage(maxLength int) string {
	return fmt.Sprintf("Text is too long! Maximum %d characters.", maxLength)
}

// State is the presentation state shared by every surface.
// History and Result are only ever replaced or cleared as a whole.
type State struct {
	Input   string
	History []scoring.LogEntry
	Result  *scoring.AnalysisResult
}

// Length counts characters the way the input bound does
func Length(text string) int {
	return utf8.RuneCountInString(text)
}

// ValidateLength rejects text longer than maxLength characters
func ValidateLength(text string, maxLength int) error {
	if Length(text) > maxLength {
		return scoring.NewValidationError("text", TooLongMessage(maxLength))
	}
	return nil
}

// ValidateSubmission rejects text that is empty after trimming whitespace
func ValidateSubmission(text string) error {
	if strings.TrimSpace(text) == "" {
		return scoring.NewValidationError("text", MsgEmptyText)
	}
	return nil
}

// WithInput adopts candidate verbatim, or returns the state unchanged with a
// validation error when it exceeds maxLength.
func (s State) WithInput(candidate string, maxLength int) (State, error) {
	if err := ValidateLength(candidate, maxLength); err != nil {
		return s, err
	}
	s.Input = candidate
	return s, nil
}

// WithResult records a fresh analysis and clears the input
func (s State) WithResult(result *scoring.AnalysisResult) State {
	r := *result
	s.Result = &r
	s.Input = ""
	return s
}

// WithHistory replaces the history
func (s State) WithHistory(history []scoring.LogEntry) State {
	s.History = make([]scoring.LogEntry, len(history))
	copy(s.History, history)
	return s
}

// Cleared resets everything
func (s State) Cleared() State {
	return State{History: []scoring.LogEntry{}}
}

// Clone returns a copy that shares nothing with s
func (s State) Clone() State {
	out := State{Input: s.Input}
	if s.History != nil {
		out.History = make([]scoring.LogEntry, len(s.History))
		copy(out.History, s.History)
	}
	if s.Result != nil {
		r := *s.Result
		out.Result = &r
	}
	return out
}

// LookupEntry resolves a chart point back to its history entry
func LookupEntry(history []scoring.LogEntry, id int) (scoring.LogEntry, bool) {
	for _, entry := range history {
		if entry.ID == id {
			return entry, true
		}
	}
	return scoring.LogEntry{}, false
}

// FormatPercent renders a [0,1] score as a percentage with two decimals
func FormatPercent(score float64) string {
	return fmt.Sprintf("%.2f%%", score*100)
}

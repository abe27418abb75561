package ui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
	"github.com/yildizm/textpulse/internal/ui/components"
)

type stubBackend struct {
	mu       sync.Mutex
	history  []scoring.LogEntry
	result   *scoring.AnalysisResult
	clearErr error
	scored   []string
	clears   int
}

func (b *stubBackend) ListLogs(context.Context) ([]scoring.LogEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]scoring.LogEntry(nil), b.history...), nil
}

func (b *stubBackend) Score(_ context.Context, text string) (*scoring.AnalysisResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.scored = append(b.scored, text)
	b.history = append(b.history, scoring.LogEntry{ID: len(b.history) + 1, Text: text, AnalysisResult: *b.result})
	r := *b.result
	return &r, nil
}

func (b *stubBackend) Clear(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clears++
	if b.clearErr != nil {
		return b.clearErr
	}
	b.history = nil
	return nil
}

func newTestModel(t *testing.T, maxLength int, history ...scoring.LogEntry) (*Model, *stubBackend) {
	t.Helper()
	backend := &stubBackend{
		history: history,
		result:  &scoring.AnalysisResult{Gibberish: "clean", GibberishScore: 0.12, Emotion: "joy", EmotionScore: 0.5},
	}
	ctrl := session.NewController(backend, maxLength, nil)
	m := NewModel(context.Background(), ctrl, Options{WarnLength: 450})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 48})
	return m, backend
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func press(m *Model, kt tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: kt})
	return cmd
}

// runCmd executes a command and feeds its message back into the model
func runCmd(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("Expected a command")
	}
	msg, ok := cmd().(opDoneMsg)
	if !ok {
		t.Fatal("Expected an operation result")
	}
	m.Update(msg)
}

func TestTypingUpdatesInput(t *testing.T) {
	m, _ := newTestModel(t, 1000)
	typeText(m, "hello")

	if got := m.ctrl.Snapshot().Input; got != "hello" {
		t.Errorf("Expected controller input %q, got %q", "hello", got)
	}
	if !strings.Contains(m.View(), "5/1000") {
		t.Error("Expected counter 5/1000 in view")
	}
}

func TestOverLengthEditRejected(t *testing.T) {
	m, _ := newTestModel(t, 5)
	typeText(m, "abcde")
	typeText(m, "f")

	if got := m.input.Value(); got != "abcde" {
		t.Errorf("Expected textarea to keep %q, got %q", "abcde", got)
	}
	if got := m.ctrl.Snapshot().Input; got != "abcde" {
		t.Errorf("Expected controller input unchanged, got %q", got)
	}
	if m.dialog != dialogAlert {
		t.Fatal("Expected alert dialog")
	}
	if !strings.Contains(m.View(), session.TooLongMessage(5)) {
		t.Error("Expected too-long alert in view")
	}

	press(m, tea.KeyEnter)
	if m.dialog != dialogNone {
		t.Error("Expected enter to dismiss the alert")
	}
}

func TestOverLengthPasteRejected(t *testing.T) {
	m, _ := newTestModel(t, 10)
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(strings.Repeat("x", 11)), Paste: true})

	if got := m.input.Value(); got != "" {
		t.Errorf("Over-length paste must not be truncated in, got %q", got)
	}
	if m.dialog != dialogAlert {
		t.Error("Expected alert dialog")
	}
}

func TestSubmitEmptyInput(t *testing.T) {
	m, backend := newTestModel(t, 1000)
	typeText(m, "   ")

	if cmd := press(m, tea.KeyCtrlS); cmd != nil {
		t.Error("Empty submit must not dispatch a service call")
	}
	if len(m.alerts) != 1 || m.alerts[0] != session.MsgEmptyText {
		t.Errorf("Expected empty-text alert, got %v", m.alerts)
	}
	if len(backend.scored) != 0 {
		t.Error("Backend must not be called")
	}
}

func TestSubmit(t *testing.T) {
	m, backend := newTestModel(t, 1000)
	typeText(m, "good morning")

	runCmd(t, m, press(m, tea.KeyCtrlS))

	if len(backend.scored) != 1 || backend.scored[0] != "good morning" {
		t.Errorf("Expected text sent verbatim, got %v", backend.scored)
	}
	if m.input.Value() != "" {
		t.Errorf("Expected input cleared, got %q", m.input.Value())
	}
	if m.state.Result == nil || m.state.Result.Gibberish != "clean" {
		t.Fatalf("Expected result to be set, got %+v", m.state.Result)
	}
	if len(m.state.History) != 1 {
		t.Errorf("Expected history reloaded with 1 entry, got %d", len(m.state.History))
	}

	view := m.View()
	for _, want := range []string{"Gibberish: clean (12.00%)", "Emotion: joy (50.00%)", "History (1)"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected %q in view", want)
		}
	}
	if m.pending != 0 {
		t.Errorf("Expected no pending operations, got %d", m.pending)
	}
}

func TestClearDeclined(t *testing.T) {
	m, backend := newTestModel(t, 1000, scoring.LogEntry{ID: 1, Text: "a"})
	runCmd(t, m, press(m, tea.KeyCtrlR))
	typeText(m, "draft")

	press(m, tea.KeyCtrlX)
	if m.dialog != dialogConfirm {
		t.Fatal("Expected confirmation dialog")
	}
	if !strings.Contains(m.View(), session.MsgConfirmClear) {
		t.Error("Expected confirmation text in view")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.dialog != dialogNone {
		t.Error("Expected dialog closed")
	}
	if backend.clears != 0 {
		t.Error("Declined clear must not reach the backend")
	}
	if len(m.state.History) != 1 || m.input.Value() != "draft" {
		t.Error("Declined clear must leave state unchanged")
	}
}

func TestClearConfirmed(t *testing.T) {
	m, backend := newTestModel(t, 1000, scoring.LogEntry{ID: 1, Text: "a"})
	runCmd(t, m, press(m, tea.KeyCtrlR))

	press(m, tea.KeyCtrlX)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	runCmd(t, m, cmd)

	if backend.clears != 1 {
		t.Errorf("Expected one clear call, got %d", backend.clears)
	}
	if len(m.state.History) != 0 || m.state.Result != nil {
		t.Error("Expected state reset")
	}
	if !strings.Contains(m.View(), components.NoDataMessage) {
		t.Error("Expected chart placeholder after clear")
	}
}

func TestClearFailureKeepsState(t *testing.T) {
	m, backend := newTestModel(t, 1000, scoring.LogEntry{ID: 1, Text: "a"})
	backend.clearErr = errors.New("down")
	runCmd(t, m, press(m, tea.KeyCtrlR))

	press(m, tea.KeyCtrlX)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")})
	runCmd(t, m, cmd)

	if len(m.state.History) != 1 {
		t.Error("Failed clear must keep history")
	}
	if m.dialog != dialogNone {
		t.Error("Service failures are logged, not alerted")
	}
}

func TestHistoryCursorAndTooltip(t *testing.T) {
	m, _ := newTestModel(t, 1000,
		scoring.LogEntry{ID: 10, Text: "first", AnalysisResult: scoring.AnalysisResult{Gibberish: "clean", GibberishScore: 0.1}},
		scoring.LogEntry{ID: 20, Text: "second", AnalysisResult: scoring.AnalysisResult{Gibberish: "noise", GibberishScore: 0.9}},
	)
	runCmd(t, m, press(m, tea.KeyCtrlR))

	if strings.Contains(m.View(), "ID: 10") {
		t.Error("Tooltip should be hidden while typing")
	}

	press(m, tea.KeyTab)
	if m.focus != focusHistory || m.cursor != 0 {
		t.Fatalf("Expected history focus at first entry, got focus=%d cursor=%d", m.focus, m.cursor)
	}
	if !strings.Contains(m.View(), "ID: 10") {
		t.Error("Expected tooltip for the first entry")
	}

	press(m, tea.KeyRight)
	press(m, tea.KeyRight)
	if m.cursor != 1 {
		t.Errorf("Expected cursor clamped at 1, got %d", m.cursor)
	}
	if got := m.history.Cursor(); got != 1 {
		t.Errorf("Expected table cursor to follow, got %d", got)
	}
	if !strings.Contains(m.View(), "Gibberish: noise (90.00%)") {
		t.Error("Expected tooltip for the second entry")
	}

	// q quits only outside the text input
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil || !m.quitting {
		t.Error("Expected q to quit from history focus")
	}
}

func TestLongEntryTooltipFitsTerminal(t *testing.T) {
	tests := []struct {
		name       string
		width      int
		wantBeside bool
	}{
		{"narrow terminal", 80, false},
		{"wide terminal", 160, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel(t, 1000, scoring.LogEntry{
				ID:             1,
				Text:           strings.Repeat("x", 1000),
				AnalysisResult: scoring.AnalysisResult{Gibberish: "noise", GibberishScore: 0.9},
			})
			m.Update(tea.WindowSizeMsg{Width: tt.width, Height: 40})
			runCmd(t, m, press(m, tea.KeyCtrlR))
			press(m, tea.KeyTab)

			trend := m.renderTrend()
			if !strings.Contains(trend, "ID: 1") {
				t.Fatal("Expected tooltip for the hovered entry")
			}
			if w := lipgloss.Width(trend); w > tt.width {
				t.Errorf("Trend pane is %d columns wide on a %d column terminal", w, tt.width)
			}

			// side by side, the tooltip's first line shares a row with the chart title
			beside := strings.Contains(strings.Split(trend, "\n")[1], "╭")
			if beside != tt.wantBeside {
				t.Errorf("Expected tooltip beside chart = %t", tt.wantBeside)
			}
		})
	}
}

func TestQuitLetterTypedInInput(t *testing.T) {
	m, _ := newTestModel(t, 1000)
	typeText(m, "q")

	if m.quitting {
		t.Error("q must be typed into the input")
	}
	if m.input.Value() != "q" {
		t.Errorf("Expected input %q, got %q", "q", m.input.Value())
	}
}

func TestSetThemeByName(t *testing.T) {
	t.Cleanup(func() { SetThemeByName("default") })

	for _, name := range GetAvailableThemes() {
		if !SetThemeByName(name) {
			t.Errorf("Expected theme %q to be accepted", name)
		}
		if GetTheme().Name != name {
			t.Errorf("Expected active theme %q, got %q", name, GetTheme().Name)
		}
	}
	if SetThemeByName("neon") {
		t.Error("Unknown theme should be rejected")
	}
}

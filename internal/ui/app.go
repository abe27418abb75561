// Package ui is the interactive terminal front end of textpulse
package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/textpulse/internal/emoji"
	"github.com/yildizm/textpulse/internal/logger"
	"github.com/yildizm/textpulse/internal/session"
	"github.com/yildizm/textpulse/internal/ui/components"
)

type focus int

const (
	focusInput focus = iota
	focusHistory
)

type dialog int

const (
	dialogNone dialog = iota
	dialogAlert
	dialogConfirm
)

// Options tune the terminal UI
type Options struct {
	// WarnLength is the input length above which the counter is highlighted
	WarnLength int
	Theme      string
	Logger     *logger.Logger
}

// Model is the Bubble Tea model of the terminal UI. The controller owns the
// state; the model keeps the latest snapshot for rendering.
type Model struct {
	ctx  context.Context
	ctrl *session.Controller
	log  *logger.Logger

	keys   keyMap
	help   help.Model
	styles *Styles

	input   textarea.Model
	history table.Model

	state      session.State
	cursor     int
	focus      focus
	dialog     dialog
	alerts     []string
	pending    int
	warnLength int

	width    int
	height   int
	ready    bool
	quitting bool
}

// NewModel creates the model for ctrl. Service calls run with ctx.
func NewModel(ctx context.Context, ctrl *session.Controller, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}
	if opts.WarnLength <= 0 {
		opts.WarnLength = ctrl.MaxLength()
	}
	SetThemeByName(opts.Theme)

	input := textarea.New()
	input.Placeholder = "Enter text to analyze..."
	input.ShowLineNumbers = false
	// length is enforced by the controller, which rejects rather than truncates
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetHeight(4)
	input.Focus()

	history := table.New(
		table.WithColumns(components.HistoryColumns(80)),
		table.WithHeight(6),
		table.WithFocused(false),
	)

	m := &Model{
		ctx:        ctx,
		ctrl:       ctrl,
		log:        opts.Logger.WithComponent("ui"),
		keys:       defaultKeyMap(),
		help:       help.New(),
		styles:     GetStyles(),
		input:      input,
		history:    history,
		cursor:     -1,
		warnLength: opts.WarnLength,
	}
	m.syncState()
	return m
}

// Init loads the history once on start
func (m *Model) Init() tea.Cmd {
	m.pending++
	return tea.Batch(textarea.Blink, loadHistoryCmd(m.ctx, m.ctrl))
}

// Update handles messages and user input
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case opDoneMsg:
		return m.handleOperationDone(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true

	inner := max(m.width-4, 20)
	m.input.SetWidth(inner)
	m.help.Width = inner
	m.history.SetColumns(components.HistoryColumns(inner))
	m.history.SetWidth(inner)
	m.history.SetHeight(max(m.height/4, 4))
	return m, nil
}

func (m *Model) handleOperationDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	if m.pending > 0 {
		m.pending--
	}
	m.log.Debug("%s finished, ok=%t", msg.op, msg.ok)

	m.syncState()
	for _, alert := range msg.alerts {
		m.showAlert(alert)
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.dialog {
	case dialogAlert:
		return m.handleAlertKey(msg)
	case dialogConfirm:
		return m.handleConfirmKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Submit):
		return m.handleSubmit()
	case key.Matches(msg, m.keys.Clear):
		m.dialog = dialogConfirm
		return m, nil
	case key.Matches(msg, m.keys.Reload):
		m.pending++
		return m, loadHistoryCmd(m.ctx, m.ctrl)
	case key.Matches(msg, m.keys.Focus):
		return m.handleFocusSwitch()
	}

	if m.focus == focusHistory {
		return m.handleHistoryKey(msg)
	}
	return m.handleInputKey(msg)
}

func (m *Model) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// handleSubmit rejects empty input before dispatching the service call
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if err := session.ValidateSubmission(m.ctrl.Snapshot().Input); err != nil {
		m.showAlert(err.Error())
		return m, nil
	}
	m.pending++
	return m, submitCmd(m.ctx, m.ctrl)
}

func (m *Model) handleFocusSwitch() (tea.Model, tea.Cmd) {
	if m.focus == focusInput {
		m.focus = focusHistory
		m.input.Blur()
		m.history.Focus()
		if m.cursor < 0 && len(m.state.History) > 0 {
			m.setCursor(0)
		}
		return m, nil
	}

	m.focus = focusInput
	m.history.Blur()
	return m, m.input.Focus()
}

// handleInputKey lets the textarea apply the key, then offers the result to
// the controller. A rejected edit restores the previous text.
func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	value := m.input.Value()
	if value == m.state.Input {
		return m, cmd
	}

	rec := &session.Recorder{}
	if !m.ctrl.Edit(rec, value) {
		m.input.SetValue(m.state.Input)
		m.showAlert(rec.LastAlert())
		return m, cmd
	}
	m.state = m.ctrl.Snapshot()
	return m, cmd
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.setCursor(m.cursor - 1)
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.setCursor(m.cursor + 1)
	}
	return m, nil
}

func (m *Model) handleAlertKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Dismiss):
		if len(m.alerts) > 0 {
			m.alerts = m.alerts[1:]
		}
		if len(m.alerts) == 0 {
			m.dialog = dialogNone
		}
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQuit):
		return m.handleQuit()
	case key.Matches(msg, m.keys.Yes):
		m.dialog = dialogNone
		m.pending++
		return m, clearCmd(m.ctx, m.ctrl)
	case key.Matches(msg, m.keys.No):
		m.dialog = dialogNone
	}
	return m, nil
}

func (m *Model) showAlert(message string) {
	if message == "" {
		return
	}
	m.alerts = append(m.alerts, message)
	m.dialog = dialogAlert
}

// syncState copies the controller snapshot into the widgets
func (m *Model) syncState() {
	m.state = m.ctrl.Snapshot()

	if m.input.Value() != m.state.Input {
		m.input.SetValue(m.state.Input)
	}

	m.history.SetRows(components.HistoryRows(m.state.History))
	switch {
	case len(m.state.History) == 0:
		m.cursor = -1
	case m.cursor >= len(m.state.History):
		m.setCursor(len(m.state.History) - 1)
	case m.cursor >= 0:
		m.setCursor(m.cursor)
	}
}

func (m *Model) setCursor(i int) {
	if len(m.state.History) == 0 {
		m.cursor = -1
		return
	}
	m.cursor = min(max(i, 0), len(m.state.History)-1)
	m.history.SetCursor(m.cursor)
}

// hoveredID is the id under the chart cursor, 0 when nothing is hovered
func (m *Model) hoveredID() int {
	if m.focus != focusHistory || m.cursor < 0 || m.cursor >= len(m.state.History) {
		return 0
	}
	return m.state.History[m.cursor].ID
}

// View renders the current screen
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}

	switch m.dialog {
	case dialogAlert:
		return m.renderDialog(m.styles.Alert, m.alerts[0], "[enter] OK")
	case dialogConfirm:
		return m.renderDialog(m.styles.Confirm, session.MsgConfirmClear, "[y] Yes   [n] No")
	}
	return m.renderMain()
}

func (m *Model) renderMain() string {
	title := m.styles.Title.Render(emoji.GetEmoji("statistics") + " textpulse")
	if m.pending > 0 {
		title += m.styles.Muted.Render("  waiting for service...")
	}

	sections := []string{title, m.renderInput()}

	if m.state.Result != nil {
		panel := components.NewResultsPanel(m.state.Result)
		panel.Icons = [2]string{emoji.GetEmoji("gibberish"), emoji.GetEmoji("emotion")}
		sections = append(sections, panel.Render())
	}

	sections = append(sections, m.renderTrend(), m.renderHistory(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderInput() string {
	counter := components.Counter(session.Length(m.state.Input), m.ctrl.MaxLength(), m.warnLength, m.styles.Warning)
	content := lipgloss.JoinVertical(lipgloss.Left, m.input.View(), counter)
	if m.focus == focusInput {
		return m.styles.Focused.Render(content)
	}
	return m.styles.Blurred.Render(content)
}

// minChartWidth is the narrowest chart drawn next to a tooltip, enough for
// the legend; below it the tooltip moves under the chart
const minChartWidth = 36

func (m *Model) renderTrend() string {
	width := max(m.width-4, 20)
	tooltip := components.Tooltip(m.state.History, m.hoveredID())
	beside := tooltip != "" && width-lipgloss.Width(tooltip)-1 >= minChartWidth
	if beside {
		width -= lipgloss.Width(tooltip) + 1
	}

	chart := components.NewTrendChart(emoji.GetEmoji("chart")+" Score Trend", m.state.History, width, max(m.height/3, 10))
	if m.focus == focusHistory {
		chart.Cursor = m.cursor
	}

	content := chart.Render()
	switch {
	case beside:
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, " ", tooltip)
	case tooltip != "":
		content = lipgloss.JoinVertical(lipgloss.Left, content, tooltip)
	}
	return m.styles.Blurred.Render(content)
}

func (m *Model) renderHistory() string {
	header := m.styles.Header.Render(fmt.Sprintf("%s History (%d)", emoji.GetEmoji("history"), len(m.state.History)))
	content := lipgloss.JoinVertical(lipgloss.Left, header, m.history.View())
	if m.focus == focusHistory {
		return m.styles.Focused.Render(content)
	}
	return m.styles.Blurred.Render(content)
}

func (m *Model) renderDialog(style lipgloss.Style, message, actions string) string {
	content := lipgloss.JoinVertical(lipgloss.Center,
		message,
		"",
		m.styles.Muted.Render(actions),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, style.Render(content))
}

// Run starts the terminal UI and blocks until the user quits or ctx ends
func Run(ctx context.Context, ctrl *session.Controller, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, ctrl, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

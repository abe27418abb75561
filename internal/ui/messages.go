package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/textpulse/internal/session"
)

type operation int

const (
	opLoad operation = iota
	opSubmit
	opClear
)

func (o operation) String() string {
	switch o {
	case opSubmit:
		return "submit"
	case opClear:
		return "clear"
	default:
		return "load"
	}
}

// opDoneMsg reports a finished controller operation. The model re-reads the
// controller snapshot on receipt.
type opDoneMsg struct {
	op     operation
	ok     bool
	alerts []string
}

// runOperation wraps a controller call as a tea command. Alerts raised
// while it runs travel back in the message.
func runOperation(ctx context.Context, op operation, fn func(context.Context, session.Prompter) bool) tea.Cmd {
	return func() tea.Msg {
		rec := &session.Recorder{Reply: true}
		ok := fn(ctx, rec)
		return opDoneMsg{op: op, ok: ok, alerts: rec.Alerts}
	}
}

func loadHistoryCmd(ctx context.Context, ctrl *session.Controller) tea.Cmd {
	return runOperation(ctx, opLoad, func(ctx context.Context, _ session.Prompter) bool {
		return ctrl.LoadHistory(ctx)
	})
}

func submitCmd(ctx context.Context, ctrl *session.Controller) tea.Cmd {
	return runOperation(ctx, opSubmit, ctrl.Submit)
}

// clearCmd runs after the user confirmed in the dialog
func clearCmd(ctx context.Context, ctrl *session.Controller) tea.Cmd {
	return runOperation(ctx, opClear, func(ctx context.Context, _ session.Prompter) bool {
		return ctrl.Clear(ctx, session.Confirmed)
	})
}

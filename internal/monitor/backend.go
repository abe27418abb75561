package monitor

import (
	"context"

	"github.com/yildizm/textpulse/internal/scoring"
	"github.com/yildizm/textpulse/internal/session"
)

// trackedBackend records every call to the wrapped backend
type trackedBackend struct {
	next      session.Backend
	collector *Collector
}

// Track wraps backend so that each service call is recorded in collector
func Track(backend session.Backend, collector *Collector) session.Backend {
	return &trackedBackend{next: backend, collector: collector}
}

func (b *trackedBackend) ListLogs(ctx context.Context) ([]scoring.LogEntry, error) {
	var entries []scoring.LogEntry
	err := b.collector.Track(OperationListLogs, func() error {
		var err error
		entries, err = b.next.ListLogs(ctx)
		return err
	})
	return entries, err
}

func (b *trackedBackend) Score(ctx context.Context, text string) (*scoring.AnalysisResult, error) {
	var result *scoring.AnalysisResult
	err := b.collector.Track(OperationScore, func() error {
		var err error
		result, err = b.next.Score(ctx, text)
		return err
	})
	return result, err
}

func (b *trackedBackend) Clear(ctx context.Context) error {
	return b.collector.Track(OperationClear, func() error {
		return b.next.Clear(ctx)
	})
}

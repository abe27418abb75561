package session

import (
	"context"
	"sync"

	"github.com/yildizm/textpulse/internal/scoring"
)

// fakeBackend records calls and returns canned responses
type fakeBackend struct {
	mu sync.Mutex

	logs     []scoring.LogEntry
	result   *scoring.AnalysisResult
	listErr  error
	scoreErr error
	clearErr error

	// scoreGate, when set, blocks Score until it is closed;
	// scoreStarted is closed when Score is first entered
	scoreGate    chan struct{}
	scoreStarted chan struct{}
	startOnce    sync.Once

	listCalls  int
	scoreCalls int
	clearCalls int
	scored     []string
}

func (f *fakeBackend) ListLogs(ctx context.Context) ([]scoring.LogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]scoring.LogEntry(nil), f.logs...), nil
}

func (f *fakeBackend) Score(ctx context.Context, text string) (*scoring.AnalysisResult, error) {
	if f.scoreStarted != nil {
		f.startOnce.Do(func() { close(f.scoreStarted) })
	}
	if f.scoreGate != nil {
		select {
		case <-f.scoreGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.scoreCalls++
	f.scored = append(f.scored, text)
	if f.scoreErr != nil {
		return nil, f.scoreErr
	}
	r := *f.result
	return &r, nil
}

func (f *fakeBackend) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clearCalls++
	return f.clearErr
}

func (f *fakeBackend) calls() (list, score, clear int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.scoreCalls, f.clearCalls
}

func sampleHistory() []scoring.LogEntry {
	return []scoring.LogEntry{
		{ID: 1, Text: "first", AnalysisResult: scoring.AnalysisResult{Gibberish: "clean", GibberishScore: 0.1, Emotion: "joy", EmotionScore: 0.7}},
		{ID: 2, Text: "second", AnalysisResult: scoring.AnalysisResult{Gibberish: "mild", GibberishScore: 0.5, Emotion: "anger", EmotionScore: 0.3}},
		{ID: 3, Text: "third", AnalysisResult: scoring.AnalysisResult{Gibberish: "noise", GibberishScore: 0.9, Emotion: "fear", EmotionScore: 0.6}},
	}
}

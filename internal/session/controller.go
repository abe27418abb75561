package session

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/yildizm/textpulse/internal/logger"
	"github.com/yildizm/textpulse/internal/scoring"
)

// Backend is the analysis service as the controller sees it
type Backend interface {
	ListLogs(ctx context.Context) ([]scoring.LogEntry, error)
	Score(ctx context.Context, text string) (*scoring.AnalysisResult, error)
	Clear(ctx context.Context) error
}

// Controller owns the presentation state and runs the user operations
// against the backend. Service operations are applied one at a time in the
// order they were issued.
type Controller struct {
	backend   Backend
	log       *logger.Logger
	maxLength int

	// ops is a FIFO gate around every service round trip
	ops *semaphore.Weighted

	mu    sync.RWMutex
	state State
}

// NewController creates a controller with empty state
func NewController(backend Backend, maxLength int, log *logger.Logger) *Controller {
	if maxLength <= 0 {
		maxLength = DefaultMaxLength
	}
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		backend:   backend,
		log:       log.WithComponent("session"),
		maxLength: maxLength,
		ops:       semaphore.NewWeighted(1),
		state:     State{History: []scoring.LogEntry{}},
	}
}

// MaxLength returns the input bound
func (c *Controller) MaxLength() int {
	return c.maxLength
}

// Snapshot returns a copy of the current state
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.Clone()
}

func (c *Controller) update(fn func(State) State) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
}

// Edit adopts candidate as the input text. Over-length candidates are
// rejected with an alert and the input is left as it was.
func (c *Controller) Edit(p Prompter, candidate string) bool {
	c.mu.Lock()
	next, err := c.state.WithInput(candidate, c.maxLength)
	c.state = next
	c.mu.Unlock()

	if err != nil {
		c.log.Debug("edit rejected: %d characters", Length(candidate))
		p.Alert(err.Error())
		return false
	}
	return true
}

// LoadHistory replaces the history with the service's. Failures are logged
// and leave the state untouched.
func (c *Controller) LoadHistory(ctx context.Context) bool {
	if err := c.ops.Acquire(ctx, 1); err != nil {
		c.log.Error("Error fetching logs: %v", err)
		return false
	}
	defer c.ops.Release(1)

	return c.loadHistory(ctx)
}

func (c *Controller) loadHistory(ctx context.Context) bool {
	entries, err := c.backend.ListLogs(ctx)
	if err != nil {
		c.log.ErrorWithFields("Error fetching logs", []logger.Field{logger.Error(err)})
		return false
	}

	c.update(func(s State) State { return s.WithHistory(entries) })
	c.log.DebugWithFields("history loaded", []logger.Field{logger.Count(len(entries))})
	return true
}

// Submit scores the current input. Empty input raises an alert and never
// reaches the service. On success the result replaces the previous one, the
// input is cleared and the history is reloaded. Scoring failures are logged
// and leave the state untouched.
func (c *Controller) Submit(ctx context.Context, p Prompter) bool {
	text := c.Snapshot().Input
	if err := ValidateSubmission(text); err != nil {
		p.Alert(err.Error())
		return false
	}

	if err := c.ops.Acquire(ctx, 1); err != nil {
		c.log.Error("Error analyzing text: %v", err)
		return false
	}
	defer c.ops.Release(1)

	result, err := c.backend.Score(ctx, text)
	if err != nil {
		c.log.ErrorWithFields("Error analyzing text", []logger.Field{logger.Error(err)})
		return false
	}

	c.update(func(s State) State { return s.WithResult(result) })
	c.log.DebugWithFields("text analyzed", []logger.Field{
		logger.F("gibberish", result.Gibberish),
		logger.F("emotion", result.Emotion),
	})

	c.loadHistory(ctx)
	return true
}

// Clear asks for confirmation, then deletes the service history. Local state
// is reset only once the service accepted the request.
func (c *Controller) Clear(ctx context.Context, p Prompter) bool {
	if !p.Confirm(MsgConfirmClear) {
		return false
	}

	if err := c.ops.Acquire(ctx, 1); err != nil {
		c.log.Error("Error clearing data: %v", err)
		return false
	}
	defer c.ops.Release(1)

	if err := c.backend.Clear(ctx); err != nil {
		c.log.ErrorWithFields("Error clearing data", []logger.Field{logger.Error(err)})
		return false
	}

	c.update(func(s State) State { return s.Cleared() })
	c.log.Debug("history cleared")
	return true
}

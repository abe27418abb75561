// Package monitor records how the analysis service behaves from the client's
// side: call counts, failures and latencies per operation.
package monitor

import (
	"sort"
	"sync"
	"time"
)

// operationStats pairs a timer with its outcome counters
type operationStats struct {
	timer     *Timer
	successes *Counter
	errors    *Counter

	mu        sync.Mutex
	lastError string
}

// Collector aggregates operation metrics. The zero value is not usable, use New.
type Collector struct {
	start time.Time

	mu         sync.RWMutex
	operations map[OperationType]*operationStats
}

// New creates an empty collector
func New() *Collector {
	return &Collector{
		start:      time.Now(),
		operations: make(map[OperationType]*operationStats),
	}
}

func (c *Collector) stats(operation OperationType) *operationStats {
	c.mu.RLock()
	s, ok := c.operations[operation]
	c.mu.RUnlock()
	if ok {
		return s
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok = c.operations[operation]; !ok {
		s = &operationStats{
			timer:     NewTimer(),
			successes: NewCounter(string(operation) + ".success"),
			errors:    NewCounter(string(operation) + ".error"),
		}
		c.operations[operation] = s
	}
	return s
}

// Track runs fn, records its duration and outcome, and returns its error
func (c *Collector) Track(operation OperationType, fn func() error) error {
	start := time.Now()
	err := fn()
	c.Record(operation, time.Since(start), err)
	return err
}

// Record adds one finished operation
func (c *Collector) Record(operation OperationType, duration time.Duration, err error) {
	s := c.stats(operation)
	s.timer.Record(duration)

	if err == nil {
		s.successes.Inc()
		return
	}
	s.errors.Inc()
	s.mu.Lock()
	s.lastError = err.Error()
	s.mu.Unlock()
}

// Operation returns the metrics of one operation
func (c *Collector) Operation(operation OperationType) OperationMetrics {
	c.mu.RLock()
	s, ok := c.operations[operation]
	c.mu.RUnlock()
	if !ok {
		return OperationMetrics{Operation: operation}
	}

	s.mu.Lock()
	lastError := s.lastError
	s.mu.Unlock()

	return OperationMetrics{
		Operation:    operation,
		Count:        s.timer.Count(),
		SuccessCount: s.successes.Get(),
		ErrorCount:   s.errors.Get(),
		TotalTime:    s.timer.TotalTime().Nanoseconds(),
		MinTime:      s.timer.MinTime().Nanoseconds(),
		MaxTime:      s.timer.MaxTime().Nanoseconds(),
		AvgTime:      s.timer.AvgTime().Nanoseconds(),
		LastError:    lastError,
	}
}

// Snapshot returns the current metrics, operations sorted by name
func (c *Collector) Snapshot() MetricsSnapshot {
	c.mu.RLock()
	names := make([]OperationType, 0, len(c.operations))
	for name := range c.operations {
		names = append(names, name)
	}
	c.mu.RUnlock()

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	operations := make([]OperationMetrics, 0, len(names))
	for _, name := range names {
		operations = append(operations, c.Operation(name))
	}

	return MetricsSnapshot{
		Timestamp:  time.Now(),
		Uptime:     time.Since(c.start).Round(time.Second).String(),
		Memory:     collectMemory(),
		Operations: operations,
	}
}

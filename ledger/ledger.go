package ledger

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"testledger-cli/logging"
)

// Observer is notified when executions start and finish.
// Implementations must not call back into the ledger.
type Observer interface {
	ExecutionStarted(testName, className string)
	ExecutionFinished(result Result, durationMs int64)
}

// Ledger tracks in-flight executions and the results of finished ones.
// All methods are safe for concurrent use.
type Ledger struct {
	mu         sync.RWMutex
	executions map[string]*Execution
	results    []Result
	runID      string
	observer   Observer
	now        func() time.Time
}

// Option configures a Ledger
type Option func(*Ledger)

// WithObserver registers an observer for start and finish events
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observer = o
	}
}

// WithClock overrides the time source, mainly for tests
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

// New creates an empty ledger
func New(opts ...Option) *Ledger {
	l := &Ledger{
		executions: make(map[string]*Execution),
		results:    make([]Result, 0),
		runID:      uuid.New().String(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// RunID identifies the current report cycle. It changes on Clear.
func (l *Ledger) RunID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.runID
}

// Start begins tracking an execution. A previous execution with the same
// key is replaced along with its logs and details.
func (l *Ledger) Start(testName, className string) {
	k := key(testName, className)

	l.mu.Lock()
	l.executions[k] = newExecution(testName, className, l.now())
	observer := l.observer
	l.mu.Unlock()

	logging.Debug("Ledger", "Started test: %s", k)
	if observer != nil {
		observer.ExecutionStarted(testName, className)
	}
}

// Log appends a timestamped entry to the execution's log.
// Unknown keys are ignored.
func (l *Ledger) Log(testName, className, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	execution, ok := l.executions[key(testName, className)]
	if !ok {
		return
	}
	entry := "[" + l.now().Format(LogTimestampLayout) + "] " + message
	execution.Logs = append(execution.Logs, entry)
}

// RecordDetail sets a detail value on the execution, replacing any previous
// value for the same key. Unknown executions are ignored.
func (l *Ledger) RecordDetail(testName, className, detailKey string, value any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	execution, ok := l.executions[key(testName, className)]
	if !ok {
		return
	}
	execution.Details[detailKey] = value
}

// End finishes an execution and appends its result. The live entry stays in
// the ledger until it is replaced by another Start or removed by Clear.
// Unknown executions are ignored.
func (l *Ledger) End(testName, className string, passed bool, errorMessage string) {
	status := StatusFailed
	if passed {
		status = StatusPassed
	}
	l.finish(testName, className, status, errorMessage)
}

// Skip finishes an execution as skipped. The reason is kept as the
// error message so it shows up in the report.
func (l *Ledger) Skip(testName, className, reason string) {
	l.finish(testName, className, StatusSkipped, reason)
}

func (l *Ledger) finish(testName, className string, status Status, message string) {
	k := key(testName, className)

	l.mu.Lock()
	execution, ok := l.executions[k]
	if !ok {
		l.mu.Unlock()
		return
	}

	execution.EndTime = l.now()
	execution.DurationMs = execution.EndTime.Sub(execution.StartTime).Milliseconds()
	if execution.DurationMs < 0 {
		execution.DurationMs = 0
	}
	execution.Status = status
	execution.ErrorMessage = message

	result := newResult(execution)
	l.results = append(l.results, result)
	durationMs := execution.DurationMs
	observer := l.observer
	l.mu.Unlock()

	logging.Debug("Ledger", "Ended test: %s - %s", k, status)
	if observer != nil {
		observer.ExecutionFinished(result, durationMs)
	}
}

// Execution returns a copy of the live execution for the given key
func (l *Ledger) Execution(testName, className string) (Execution, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	execution, ok := l.executions[key(testName, className)]
	if !ok {
		return Execution{}, false
	}

	cp := *execution
	cp.Logs = append([]string(nil), execution.Logs...)
	cp.Details = make(map[string]any, len(execution.Details))
	for k, v := range execution.Details {
		cp.Details[k] = v
	}
	return cp, true
}

// Results returns the finished results in completion order. The returned
// slice is a copy; results themselves are never modified after creation.
func (l *Ledger) Results() []Result {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Result, len(l.results))
	copy(out, l.results)
	return out
}

// Clear drops every execution and result and starts a new run
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.executions = make(map[string]*Execution)
	l.results = make([]Result, 0)
	l.runID = uuid.New().String()
}

// Statistics counts results by status. It scans the results on every call.
func (l *Ledger) Statistics() Statistics {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := Statistics{Total: len(l.results)}
	for _, r := range l.results {
		switch r.Status {
		case StatusPassed:
			stats.Passed++
		case StatusFailed:
			stats.Failed++
		case StatusSkipped:
			stats.Skipped++
		}
	}
	return stats
}

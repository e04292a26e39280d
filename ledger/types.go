// Package ledger records test executions as they run and keeps the frozen
// results that reports are built from.
package ledger

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of a test execution
type Status string

const (
	StatusRunning Status = "RUNNING"
	StatusPassed  Status = "PASSED"
	StatusFailed  Status = "FAILED"
	StatusSkipped Status = "SKIPPED"
)

const (
	// TimestampLayout is used for result start and end times
	TimestampLayout = "2006-01-02 15:04:05"
	// LogTimestampLayout prefixes every log entry
	LogTimestampLayout = "15:04:05.000"
)

// Execution is a single in-flight test tracked by the ledger.
// It is only mutated while the ledger lock is held.
type Execution struct {
	TestName     string
	ClassName    string
	Status       Status
	StartTime    time.Time
	EndTime      time.Time
	DurationMs   int64
	ErrorMessage string
	Logs         []string
	Details      map[string]any
}

func newExecution(testName, className string, now time.Time) *Execution {
	return &Execution{
		TestName:  testName,
		ClassName: className,
		Status:    StatusRunning,
		StartTime: now,
		Logs:      make([]string, 0),
		Details:   make(map[string]any),
	}
}

// FormattedStartTime returns the start time in TimestampLayout
func (e *Execution) FormattedStartTime() string {
	return e.StartTime.Format(TimestampLayout)
}

// FormattedEndTime returns the end time in TimestampLayout, or "" while running
func (e *Execution) FormattedEndTime() string {
	if e.EndTime.IsZero() {
		return ""
	}
	return e.EndTime.Format(TimestampLayout)
}

// FormattedDuration returns the duration in a human unit
func (e *Execution) FormattedDuration() string {
	return FormatDuration(e.DurationMs)
}

// Result is the immutable snapshot of a completed execution
type Result struct {
	TestName     string
	ClassName    string
	Status       Status
	StartTime    string
	EndTime      string
	Duration     string
	ErrorMessage string
	Logs         []string
	Details      map[string]any
}

func newResult(e *Execution) Result {
	logs := make([]string, len(e.Logs))
	copy(logs, e.Logs)

	details := make(map[string]any, len(e.Details))
	for k, v := range e.Details {
		details[k] = v
	}

	return Result{
		TestName:     e.TestName,
		ClassName:    e.ClassName,
		Status:       e.Status,
		StartTime:    e.FormattedStartTime(),
		EndTime:      e.FormattedEndTime(),
		Duration:     e.FormattedDuration(),
		ErrorMessage: e.ErrorMessage,
		Logs:         logs,
		Details:      details,
	}
}

// Statistics holds result counts by status
type Statistics struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// FormatDuration renders milliseconds as "Nms" below one second,
// "N.NNs" below one minute and "N.NNm" otherwise
func FormatDuration(ms int64) string {
	switch {
	case ms < 1000:
		return fmt.Sprintf("%dms", ms)
	case ms < 60000:
		return fmt.Sprintf("%.2fs", float64(ms)/1000.0)
	default:
		return fmt.Sprintf("%.2fm", float64(ms)/60000.0)
	}
}

func key(testName, className string) string {
	return className + "." + testName
}

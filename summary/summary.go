// Package summary derives report totals from ledger results
package summary

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"testledger-cli/ledger"
)

// Summary is the data model handed to the report template.
// It is rebuilt before every render and never persisted.
type Summary struct {
	RunID             string
	TotalTests        int
	PassedTests       int
	FailedTests       int
	SkippedTests      int
	ExecutionTime     string
	Results           []ledger.Result
	ReportGeneratedAt string
}

// PassRate returns passed/total as a percentage, or 0 with no results
func (s Summary) PassRate() float64 {
	if s.TotalTests == 0 {
		return 0
	}
	return float64(s.PassedTests) / float64(s.TotalTests) * 100
}

// FormattedPassRate renders the pass rate with one decimal, e.g. "66.7%"
func (s Summary) FormattedPassRate() string {
	return fmt.Sprintf("%.1f%%", s.PassRate())
}

// Calculate builds a summary for the given results
func Calculate(results []ledger.Result, now time.Time) Summary {
	s := Summary{
		TotalTests:        len(results),
		Results:           make([]ledger.Result, len(results)),
		ReportGeneratedAt: now.Format(ledger.TimestampLayout),
	}
	copy(s.Results, results)

	var totalMs int64
	for _, r := range results {
		switch r.Status {
		case ledger.StatusPassed:
			s.PassedTests++
		case ledger.StatusFailed:
			s.FailedTests++
		case ledger.StatusSkipped:
			s.SkippedTests++
		}
		totalMs += ParseDuration(r.Duration)
	}
	s.ExecutionTime = ledger.FormatDuration(totalMs)

	return s
}

// FromLedger builds a summary from everything the ledger has recorded so far
func FromLedger(l *ledger.Ledger, now time.Time) Summary {
	s := Calculate(l.Results(), now)
	s.RunID = l.RunID()
	return s
}

// ParseDuration turns a formatted duration back into milliseconds.
// "Nms" is read as an integer, "N.NNs" and "N.NNm" as decimals scaled to
// milliseconds and truncated. Anything else counts as zero.
func ParseDuration(d string) int64 {
	switch {
	case strings.HasSuffix(d, "ms"):
		ms, err := strconv.ParseInt(strings.TrimSuffix(d, "ms"), 10, 64)
		if err != nil {
			return 0
		}
		return ms
	case strings.HasSuffix(d, "s"):
		return scaled(strings.TrimSuffix(d, "s"), 1000)
	case strings.HasSuffix(d, "m"):
		return scaled(strings.TrimSuffix(d, "m"), 60000)
	default:
		return 0
	}
}

func scaled(value string, factor float64) int64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return int64(f * factor)
}

package summary

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testledger-cli/ledger"
)

var generatedAt = time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int64
	}{
		{"milliseconds", "100ms", 100},
		{"zero milliseconds", "0ms", 0},
		{"seconds", "2.50s", 2500},
		{"seconds round", "1.50s", 1500},
		{"minutes", "0.02m", 1200},
		{"minutes whole", "1.00m", 60000},
		{"unknown suffix", "5h", 0},
		{"empty", "", 0},
		{"garbage milliseconds", "abcms", 0},
		{"garbage seconds", "x.ys", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseDuration(tt.in))
		})
	}
}

func TestCalculate_Empty(t *testing.T) {
	s := Calculate(nil, generatedAt)

	assert.Equal(t, 0, s.TotalTests)
	assert.Equal(t, 0, s.PassedTests)
	assert.Equal(t, 0, s.FailedTests)
	assert.Equal(t, 0, s.SkippedTests)
	assert.Equal(t, 0.0, s.PassRate())
	assert.Equal(t, "0.0%", s.FormattedPassRate())
	assert.Equal(t, "0ms", s.ExecutionTime)
	assert.Empty(t, s.Results)
	assert.Equal(t, "2025-03-20 10:30:00", s.ReportGeneratedAt)
}

func TestCalculate_MixedResults(t *testing.T) {
	// Arrange
	results := []ledger.Result{
		{TestName: "a", Status: ledger.StatusPassed, Duration: "100ms"},
		{TestName: "b", Status: ledger.StatusFailed, Duration: "1.50s"},
		{TestName: "c", Status: ledger.StatusPassed, Duration: "0.02m"},
	}

	// Act
	s := Calculate(results, generatedAt)

	// Assert
	assert.Equal(t, 3, s.TotalTests)
	assert.Equal(t, 2, s.PassedTests)
	assert.Equal(t, 1, s.FailedTests)
	assert.Equal(t, 0, s.SkippedTests)
	assert.Equal(t, "2.80s", s.ExecutionTime)
	assert.Equal(t, "66.7%", s.FormattedPassRate())
	require.Len(t, s.Results, 3)
	assert.Equal(t, "a", s.Results[0].TestName)
}

func TestCalculate_UnknownSuffixContributesNothing(t *testing.T) {
	results := []ledger.Result{
		{Status: ledger.StatusPassed, Duration: "2.50s"},
		{Status: ledger.StatusPassed, Duration: "3h"},
	}

	s := Calculate(results, generatedAt)

	assert.Equal(t, "2.50s", s.ExecutionTime)
}

func TestCalculate_MinuteAggregate(t *testing.T) {
	results := []ledger.Result{
		{Status: ledger.StatusPassed, Duration: "45.00s"},
		{Status: ledger.StatusSkipped, Duration: "45.00s"},
	}

	s := Calculate(results, generatedAt)

	assert.Equal(t, "1.50m", s.ExecutionTime)
	assert.Equal(t, 1, s.SkippedTests)
	assert.Equal(t, "50.0%", s.FormattedPassRate())
}

func TestPassRateBounds(t *testing.T) {
	for passed := 0; passed <= 4; passed++ {
		s := Summary{TotalTests: 4, PassedTests: passed}
		assert.GreaterOrEqual(t, s.PassRate(), 0.0)
		assert.LessOrEqual(t, s.PassRate(), 100.0)
	}
}

func TestFromLedger(t *testing.T) {
	l := ledger.New()
	l.Start("a", "C")
	l.End("a", "C", true, "")

	s := FromLedger(l, generatedAt)

	assert.Equal(t, l.RunID(), s.RunID)
	assert.Equal(t, 1, s.TotalTests)
	assert.Equal(t, "100.0%", s.FormattedPassRate())
}

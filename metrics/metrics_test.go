package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testledger-cli/ledger"
)

func TestRecorder_ObservesLedger(t *testing.T) {
	// Arrange
	r := NewRecorder()
	l := ledger.New(ledger.WithObserver(r))

	// Act
	l.Start("a", "AuthTests")
	l.End("a", "AuthTests", true, "")
	l.Start("b", "AuthTests")
	l.End("b", "AuthTests", false, "boom")
	l.Start("c", "FlightTests")
	l.Skip("c", "FlightTests", "short mode")

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(r.executionsStarted.WithLabelValues("AuthTests")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.executionsStarted.WithLabelValues("FlightTests")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.executionsFinished.WithLabelValues("AuthTests", "PASSED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.executionsFinished.WithLabelValues("AuthTests", "FAILED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.executionsFinished.WithLabelValues("FlightTests", "SKIPPED")))
	assert.Equal(t, 2, testutil.CollectAndCount(r.executionDuration))
}

func TestRecorder_RecordAggregate(t *testing.T) {
	r := NewRecorder()

	r.RecordAggregate(5, 4, 1, 0, 12.5)

	assert.Equal(t, 5.0, testutil.ToFloat64(r.aggregateTests.WithLabelValues("total")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.aggregateTests.WithLabelValues("passed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.aggregateTests.WithLabelValues("failed")))
	assert.Equal(t, 0.0, testutil.ToFloat64(r.aggregateTests.WithLabelValues("error")))
	assert.Equal(t, 12.5, testutil.ToFloat64(r.aggregateDuration))
}

func TestRecorder_WriteTextfile(t *testing.T) {
	// Arrange
	r := NewRecorder()
	r.ExecutionStarted("a", "AuthTests")
	path := filepath.Join(t.TempDir(), "metrics", "testledger.prom")

	// Act
	err := r.WriteTextfile(path)

	// Assert
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `testledger_executions_started_total{class_name="AuthTests"} 1`)
}

func TestRecorders_AreIsolated(t *testing.T) {
	a := NewRecorder()
	b := NewRecorder()

	a.ExecutionStarted("x", "C")

	assert.Equal(t, 1.0, testutil.ToFloat64(a.executionsStarted.WithLabelValues("C")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.executionsStarted.WithLabelValues("C")))
}

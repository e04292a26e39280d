package hooks

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"testledger-cli/ledger"
	"testledger-cli/metrics"
	"testledger-cli/report"
	"testledger-cli/summary"
)

type fakeContext struct {
	name    string
	class   string
	err     error
	skipped bool
}

func (c fakeContext) TestName() string      { return c.name }
func (c fakeContext) ClassName() string     { return c.class }
func (c fakeContext) ExecutionError() error { return c.err }
func (c fakeContext) Skipped() bool         { return c.skipped }

type recordingRenderer struct {
	calls     int
	last      summary.Summary
	err       error
	reportLoc string
}

func (r *recordingRenderer) Render(s summary.Summary) error {
	r.calls++
	r.last = s
	return r.err
}

func (r *recordingRenderer) ReportPath() string {
	return r.reportLoc
}

type emptyError struct{}

func (emptyError) Error() string { return "" }

func newTestHooks(r Renderer, opts ...Option) (*Hooks, *bytes.Buffer) {
	var out bytes.Buffer
	opts = append([]Option{WithOutput(&out)}, opts...)
	return New(ledger.New(), r, opts...), &out
}

func TestHooks_PassingTest(t *testing.T) {
	// Arrange
	h, _ := newTestHooks(&recordingRenderer{})
	tc := fakeContext{name: "testLogin", class: "AuthTests"}

	// Act
	h.BeforeEach(tc)
	h.AfterEach(tc)

	// Assert
	results := h.Ledger().Results()
	require.Len(t, results, 1)
	r := results[0]
	assert.Equal(t, ledger.StatusPassed, r.Status)
	assert.Empty(t, r.ErrorMessage)
	require.Len(t, r.Logs, 1)
	assert.Contains(t, r.Logs[0], MessageStarted)
	assert.NotContains(t, r.Details, StackTraceDetail)

	// The closing message only reaches the live entry
	execution, ok := h.Ledger().Execution("testLogin", "AuthTests")
	require.True(t, ok)
	require.Len(t, execution.Logs, 2)
	assert.Contains(t, execution.Logs[1], MessagePassed)
}

func TestHooks_FailingTest(t *testing.T) {
	// Arrange
	h, _ := newTestHooks(&recordingRenderer{})
	tc := fakeContext{name: "testCategories", class: "ExperienceCategoriesTests", err: errors.New("expected 3 categories")}

	// Act
	h.BeforeEach(tc)
	h.AfterEach(tc)

	// Assert
	r := h.Ledger().Results()[0]
	assert.Equal(t, ledger.StatusFailed, r.Status)
	assert.Equal(t, "expected 3 categories", r.ErrorMessage)
	trace, ok := r.Details[StackTraceDetail].(string)
	require.True(t, ok)
	assert.Contains(t, trace, "TestHooks_FailingTest")

	execution, _ := h.Ledger().Execution("testCategories", "ExperienceCategoriesTests")
	assert.Contains(t, execution.Logs[len(execution.Logs)-1], MessageFailed)
}

func TestHooks_FailingTest_WrappedStack(t *testing.T) {
	h, _ := newTestHooks(nil)
	cause := errors.New("connection refused")
	tc := fakeContext{name: "a", class: "C", err: fmt.Errorf("calling api: %w", cause)}

	h.BeforeEach(tc)
	h.AfterEach(tc)

	r := h.Ledger().Results()[0]
	assert.Equal(t, "calling api: connection refused", r.ErrorMessage)
	assert.Contains(t, r.Details[StackTraceDetail], "TestHooks_FailingTest_WrappedStack")
}

func TestHooks_FailingTest_EmptyMessageFallsBackToTypeName(t *testing.T) {
	h, _ := newTestHooks(nil)
	tc := fakeContext{name: "a", class: "C", err: emptyError{}}

	h.BeforeEach(tc)
	h.AfterEach(tc)

	r := h.Ledger().Results()[0]
	assert.Equal(t, ledger.StatusFailed, r.Status)
	assert.Equal(t, "emptyError", r.ErrorMessage)
}

func TestHooks_SkippedTest(t *testing.T) {
	h, _ := newTestHooks(nil)
	tc := fakeContext{name: "a", class: "C", skipped: true}

	h.BeforeEach(tc)
	h.AfterEach(tc)

	assert.Equal(t, ledger.Statistics{Total: 1, Skipped: 1}, h.Ledger().Statistics())
}

func TestHooks_AfterAll(t *testing.T) {
	// Arrange
	renderer := &recordingRenderer{reportLoc: "target/html-reports/test-report.html"}
	now := time.Date(2025, 3, 20, 10, 30, 0, 0, time.UTC)
	h, out := newTestHooks(renderer, WithClock(func() time.Time { return now }))
	for i, err := range []error{nil, errors.New("boom"), nil} {
		tc := fakeContext{name: fmt.Sprintf("test%d", i), class: "C", err: err}
		h.BeforeEach(tc)
		h.AfterEach(tc)
	}

	// Act
	h.AfterAll("C")

	// Assert
	require.Equal(t, 1, renderer.calls)
	assert.Equal(t, 3, renderer.last.TotalTests)
	assert.Equal(t, 2, renderer.last.PassedTests)
	assert.Equal(t, "2025-03-20 10:30:00", renderer.last.ReportGeneratedAt)
	assert.Equal(t, h.Ledger().RunID(), renderer.last.RunID)

	printed := out.String()
	assert.Contains(t, printed, "Generating HTML report for class: C")
	assert.Contains(t, printed, "Test Execution Summary")
	assert.Contains(t, printed, "Total Tests")
	assert.Contains(t, printed, "HTML Report: target/html-reports/test-report.html")
}

func TestHooks_AfterAll_RenderErrorIsSwallowed(t *testing.T) {
	renderer := &recordingRenderer{err: errors.New("disk full")}
	h, out := newTestHooks(renderer)

	assert.NotPanics(t, func() { h.AfterAll("C") })
	assert.Equal(t, 1, renderer.calls)
	assert.Contains(t, out.String(), "Total Tests")
}

func TestHooks_AfterAll_WritesReportAndMetrics(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	recorder := metrics.NewRecorder()
	l := ledger.New(ledger.WithObserver(recorder))
	metricsPath := filepath.Join(dir, "metrics", "testledger.prom")
	var out bytes.Buffer
	h := New(l, report.NewRenderer(report.WithBaseDir(dir)), WithOutput(&out), WithMetrics(recorder, metricsPath))

	tc := fakeContext{name: "testFlight", class: "FlightTests"}
	h.BeforeEach(tc)
	h.AfterEach(tc)

	// Act
	h.AfterAll("FlightTests")

	// Assert
	html, err := os.ReadFile(filepath.Join(dir, "target", "html-reports", "test-report.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "testFlight")
	assert.Contains(t, string(html), "100.0%")

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `testledger_executions_finished_total{class_name="FlightTests",status="PASSED"} 1`)
}

func TestNew_NilLedgerUsesDefault(t *testing.T) {
	h := New(nil, nil)
	assert.Same(t, ledger.Default(), h.Ledger())
}

func TestErrorText(t *testing.T) {
	assert.Equal(t, "boom", errorText(errors.New("boom")))
	assert.Equal(t, "emptyError", errorText(emptyError{}))
	assert.Equal(t, "emptyError", errorText(&emptyError{}))
}

func TestStackTrace_PlainError(t *testing.T) {
	trace := stackTrace(fmt.Errorf("plain"))
	assert.Equal(t, "plain\n", trace)
}

func TestStackTrace_OneFramePerLine(t *testing.T) {
	trace := stackTrace(errors.New("x"))
	lines := strings.Split(strings.TrimSpace(trace), "\n")
	assert.Greater(t, len(lines), 1)
}

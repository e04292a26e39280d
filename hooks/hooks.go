// Package hooks relays test lifecycle events into a ledger and renders the
// report once a group of tests has finished.
package hooks

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"

	"testledger-cli/ledger"
	"testledger-cli/logging"
	"testledger-cli/metrics"
	"testledger-cli/summary"
	"testledger-cli/tui/styles"
)

const (
	MessageStarted = "Test execution started"
	MessagePassed  = "Test completed successfully"
	MessageFailed  = "Test failed"
	MessageSkipped = "Test skipped"

	// StackTraceDetail is the detail key failures record their stack under
	StackTraceDetail = "stackTrace"
)

// Renderer renders a summary into a report
type Renderer interface {
	Render(s summary.Summary) error
}

// TestContext describes the test a lifecycle event fires for
type TestContext interface {
	TestName() string
	ClassName() string
	// ExecutionError is non-nil when the test failed
	ExecutionError() error
	Skipped() bool
}

// Hooks adapts lifecycle events to ledger operations
type Hooks struct {
	ledger      *ledger.Ledger
	renderer    Renderer
	out         io.Writer
	now         func() time.Time
	recorder    *metrics.Recorder
	metricsPath string
	className   string
}

// Option configures Hooks
type Option func(*Hooks)

// WithOutput sets where the end of run summary is printed
func WithOutput(w io.Writer) Option {
	return func(h *Hooks) {
		h.out = w
	}
}

// WithClock overrides the time used for the report timestamp
func WithClock(now func() time.Time) Option {
	return func(h *Hooks) {
		h.now = now
	}
}

// WithMetrics writes the recorder's metrics to path after every report
func WithMetrics(r *metrics.Recorder, path string) Option {
	return func(h *Hooks) {
		h.recorder = r
		h.metricsPath = path
	}
}

// WithClassName sets the class name used for tests tracked with Track
func WithClassName(name string) Option {
	return func(h *Hooks) {
		h.className = name
	}
}

// New creates hooks recording into l and rendering with r.
// A nil ledger means the process-wide default.
func New(l *ledger.Ledger, r Renderer, opts ...Option) *Hooks {
	if l == nil {
		l = ledger.Default()
	}
	h := &Hooks{
		ledger:    l,
		renderer:  r,
		out:       os.Stdout,
		now:       time.Now,
		className: "Unknown",
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Ledger returns the ledger events are recorded into
func (h *Hooks) Ledger() *ledger.Ledger {
	return h.ledger
}

// BeforeEach starts tracking the test
func (h *Hooks) BeforeEach(tc TestContext) {
	name, class := tc.TestName(), tc.ClassName()
	h.ledger.Start(name, class)
	h.ledger.Log(name, class, MessageStarted)
}

// AfterEach finishes the test. A failing test records its stack trace as a
// detail before the result is frozen; the closing log entry is appended
// afterwards and only reaches the live execution.
func (h *Hooks) AfterEach(tc TestContext) {
	name, class := tc.TestName(), tc.ClassName()

	if tc.Skipped() {
		h.ledger.Skip(name, class, MessageSkipped)
		h.ledger.Log(name, class, MessageSkipped)
		return
	}

	err := tc.ExecutionError()
	passed := err == nil
	errorMessage := ""
	if !passed {
		errorMessage = errorText(err)
		h.ledger.RecordDetail(name, class, StackTraceDetail, stackTrace(err))
	}

	h.ledger.End(name, class, passed, errorMessage)

	statusMessage := MessagePassed
	if !passed {
		statusMessage = MessageFailed
	}
	h.ledger.Log(name, class, statusMessage)
}

// AfterAll renders the report and prints the run statistics. Render
// failures are logged and never propagate.
func (h *Hooks) AfterAll(group string) {
	fmt.Fprintf(h.out, "Generating HTML report for class: %s\n", group)

	if h.renderer != nil {
		if err := h.renderer.Render(summary.FromLedger(h.ledger, h.now())); err != nil {
			logging.Error("Hooks", err, "Error generating HTML report")
		}
	}

	if h.recorder != nil && h.metricsPath != "" {
		if err := h.recorder.WriteTextfile(h.metricsPath); err != nil {
			logging.Error("Hooks", err, "Error writing metrics")
		}
	}

	h.printStatistics(h.ledger.Statistics())
}

func (h *Hooks) printStatistics(stats ledger.Statistics) {
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, styles.HeaderStyle.Render("=== Test Execution Summary ==="))

	table := tablewriter.NewWriter(h.out)
	rows := [][]string{
		{"Total Tests", strconv.Itoa(stats.Total)},
		{"Passed", strconv.Itoa(stats.Passed)},
		{"Failed", strconv.Itoa(stats.Failed)},
		{"Skipped", strconv.Itoa(stats.Skipped)},
	}
	if err := table.Bulk(rows); err != nil {
		logging.Error("Hooks", err, "Error building statistics table")
		return
	}
	if err := table.Render(); err != nil {
		logging.Error("Hooks", err, "Error printing statistics table")
		return
	}

	if p, ok := h.renderer.(interface{ ReportPath() string }); ok {
		fmt.Fprintf(h.out, "HTML Report: %s\n", p.ReportPath())
	}
	fmt.Fprintln(h.out, styles.HelpStyle.Render(strings.Repeat("=", 31)))
	fmt.Fprintln(h.out)
}

// errorText is the error's message, or its type name when the message is empty
func errorText(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	name := fmt.Sprintf("%T", err)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// stackTrace renders the innermost stack carried by err, one frame per line
func stackTrace(err error) string {
	var tracer stackTracer
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			tracer = st
		}
	}
	if tracer == nil {
		return fmt.Sprintf("%+v\n", err)
	}

	var b strings.Builder
	for _, frame := range tracer.StackTrace() {
		fmt.Fprintf(&b, "%+v\n", frame)
	}
	return b.String()
}

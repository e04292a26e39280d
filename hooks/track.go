package hooks

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
)

// Tracker is the TestContext of a Go test registered with Track. Logs and
// details recorded through it land on the test's ledger entry.
type Tracker struct {
	t         testing.TB
	hooks     *Hooks
	className string

	mu  sync.Mutex
	err error
}

var _ TestContext = (*Tracker)(nil)

// Track records t in the ledger. The execution starts immediately and is
// finished from a cleanup function once the test and its subtests are done.
func (h *Hooks) Track(t testing.TB) *Tracker {
	t.Helper()

	tr := &Tracker{t: t, hooks: h, className: h.className}
	h.BeforeEach(tr)
	t.Cleanup(func() {
		h.AfterEach(tr)
	})
	return tr
}

// TestName implements TestContext
func (tr *Tracker) TestName() string {
	return tr.t.Name()
}

// ClassName implements TestContext
func (tr *Tracker) ClassName() string {
	return tr.className
}

// Skipped implements TestContext
func (tr *Tracker) Skipped() bool {
	return tr.t.Skipped()
}

// ExecutionError implements TestContext. It returns the first error passed
// to Fail, or a generic error when the test failed some other way.
func (tr *Tracker) ExecutionError() error {
	tr.mu.Lock()
	defer tr.mu.Unlock()

	if tr.err != nil {
		return tr.err
	}
	if tr.t.Failed() {
		return errors.New("test failed")
	}
	return nil
}

// Log appends a message to the test's ledger entry
func (tr *Tracker) Log(message string) {
	tr.hooks.ledger.Log(tr.TestName(), tr.className, message)
}

// Detail records a key/value pair on the test's ledger entry
func (tr *Tracker) Detail(key string, value any) {
	tr.hooks.ledger.RecordDetail(tr.TestName(), tr.className, key, value)
}

// Fail marks the test as failed with err. The first error is the one
// reported.
func (tr *Tracker) Fail(err error) {
	tr.t.Helper()

	tr.mu.Lock()
	if tr.err == nil {
		tr.err = err
	}
	tr.mu.Unlock()

	tr.t.Error(err)
}

// Runner is satisfied by *testing.M
type Runner interface {
	Run() int
}

// RunMain runs the tests and fires AfterAll for group. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(hooks.RunMain(m, h, "FlightTests"))
//	}
func RunMain(m Runner, h *Hooks, group string) int {
	code := m.Run()
	h.AfterAll(group)
	return code
}

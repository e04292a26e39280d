package ledger

import "sync"

// The process-wide ledger. Test binaries share one result set across
// parallel tests; call Default().Clear() between independent report cycles.
var (
	defaultMu     sync.RWMutex
	defaultLedger = New()
)

// Default returns the process-wide ledger
func Default() *Ledger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLedger
}

// SetDefault replaces the process-wide ledger and returns the previous one
func SetDefault(l *Ledger) *Ledger {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	prev := defaultLedger
	defaultLedger = l
	return prev
}

// Convenience functions for the process-wide ledger

// Start begins tracking an execution on the default ledger
func Start(testName, className string) {
	Default().Start(testName, className)
}

// Log appends a log entry on the default ledger
func Log(testName, className, message string) {
	Default().Log(testName, className, message)
}

// RecordDetail records a detail on the default ledger
func RecordDetail(testName, className, detailKey string, value any) {
	Default().RecordDetail(testName, className, detailKey, value)
}

// End finishes an execution on the default ledger
func End(testName, className string, passed bool, errorMessage string) {
	Default().End(testName, className, passed, errorMessage)
}

package report

import (
	"html/template"
	"sort"

	"github.com/Masterminds/sprig/v3"

	"testledger-cli/ledger"
)

// templateFuncs returns the helper functions available to report templates:
// the sprig HTML-safe set plus a few ledger specific helpers.
func templateFuncs() template.FuncMap {
	funcs := sprig.HtmlFuncMap()
	funcs["statusClass"] = statusClass
	funcs["sortedKeys"] = sortedKeys
	return funcs
}

// statusClass maps a status to the CSS class used for rows and badges
func statusClass(status ledger.Status) string {
	switch status {
	case ledger.StatusPassed, ledger.StatusFailed, ledger.StatusSkipped, ledger.StatusRunning:
		return string(status)
	default:
		return "UNKNOWN"
	}
}

// sortedKeys returns the keys of a details map in lexical order so
// rendered output is stable between runs
func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Package junit aggregates JUnit-style XML result files into a grouped HTML
// report, pulling extra columns out of each case's captured console output.
package junit

import (
	"strings"
	"time"
)

// Status is the outcome of a single test case
type Status string

const (
	StatusPass  Status = "PASS"
	StatusFail  Status = "FAIL"
	StatusError Status = "ERROR"
)

// Class returns the CSS class of the status icon
func (s Status) Class() string {
	switch s {
	case StatusFail:
		return "status-fail"
	case StatusError:
		return "status-error"
	default:
		return "status-pass"
	}
}

// UnclassifiedCategory groups cases no method rule matched
const UnclassifiedCategory = "Unclassified"

// CaseDetail is one table row of the aggregated report
type CaseDetail struct {
	MethodName       string
	ClassName        string
	DisplayName      string
	Parameter        string
	Expected         string
	ActualCategories string
	ExperienceTypes  string
	Status           Status
	Time             string
	Category         string
}

// HasExpected reports whether an expected value was extracted
func (d CaseDetail) HasExpected() bool {
	return d.Expected != ""
}

// MatchClass is "category-match" when the expected value appears in the
// actual categories ignoring case, "category-mismatch" when it does not, and
// empty when nothing was expected
func (d CaseDetail) MatchClass() string {
	if !d.HasExpected() {
		return ""
	}
	if strings.Contains(strings.ToLower(d.ActualCategories), strings.ToLower(d.Expected)) {
		return "category-match"
	}
	return "category-mismatch"
}

// Group is the set of cases sharing a category
type Group struct {
	Category string
	Cases    []CaseDetail
}

// Totals are summed from the suite attributes, not from the cases.
// Passed is derived as Tests - Failures - Errors.
type Totals struct {
	Tests    int
	Passed   int
	Failures int
	Errors   int
	Time     float64
}

// SuccessRate returns Passed/Tests as a percentage, or 0 with no tests
func (t Totals) SuccessRate() float64 {
	if t.Tests == 0 {
		return 0
	}
	return float64(t.Passed) / float64(t.Tests) * 100
}

// Report is the outcome of an aggregation run
type Report struct {
	Totals      Totals
	Groups      []Group
	Files       []string
	Suites      []string
	GeneratedAt time.Time
	Path        string
}

// Cases returns every case across groups in report order
func (r *Report) Cases() []CaseDetail {
	var cases []CaseDetail
	for _, g := range r.Groups {
		cases = append(cases, g.Cases...)
	}
	return cases
}

// groupCases buckets cases by category keeping first-seen order
func groupCases(cases []CaseDetail) []Group {
	index := make(map[string]int)
	groups := make([]Group, 0)
	for _, c := range cases {
		category := c.Category
		if category == "" {
			category = UnclassifiedCategory
		}
		i, ok := index[category]
		if !ok {
			i = len(groups)
			index[category] = i
			groups = append(groups, Group{Category: category})
		}
		groups[i].Cases = append(groups[i].Cases, c)
	}
	return groups
}

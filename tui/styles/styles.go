package styles

import (
	"github.com/charmbracelet/lipgloss"
	btable "github.com/evertras/bubble-table/table"
)

// Colors
var (
	Primary    = lipgloss.Color("#00ff00") // Bright green
	Secondary  = lipgloss.Color("#00aa00") // Darker green
	Accent     = lipgloss.Color("#00ffaa") // Cyan-green
	Warning    = lipgloss.Color("#ffaa00")
	ErrorColor = lipgloss.Color("#ff0000") // Red
)

// Common Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true).
			Underline(true).
			Padding(0, 1)

	GroupStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Warning).
			Background(lipgloss.Color("#2a2a2a")).
			Padding(0, 1)

	PassStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	FailStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Warning).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(lipgloss.Color("#000000")).
			Bold(true)

	DetailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#cccccc")).
			PaddingLeft(4)

	HelpStyle = lipgloss.NewStyle().
			Foreground(Secondary).
			Faint(true)
)

// Group summary table columns
const (
	ColumnCategory = "category"
	ColumnCases    = "cases"
	ColumnPassed   = "passed"
	ColumnFailed   = "failed"
	ColumnErrors   = "errors"
)

// GroupTableColumns lays out the per-category summary table
var GroupTableColumns = []btable.Column{
	btable.NewColumn(ColumnCategory, "Category", 40),
	btable.NewColumn(ColumnCases, "Cases", 8),
	btable.NewColumn(ColumnPassed, "Passed", 8),
	btable.NewColumn(ColumnFailed, "Failed", 8),
	btable.NewColumn(ColumnErrors, "Errors", 8),
}

// Package viewer is an interactive terminal browser over an aggregated
// JUnit report.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	btable "github.com/evertras/bubble-table/table"

	"testledger-cli/junit"
	"testledger-cli/tui/keys"
	"testledger-cli/tui/styles"
)

const defaultListHeight = 10

// Model browses the groups and cases of a report
type Model struct {
	keys keys.KeyMap
	help help.Model

	report       *junit.Report
	table        btable.Model
	items        []Item
	expanded     map[string]bool
	failuresOnly bool

	selected   int
	offset     int
	listHeight int
}

// New creates a viewer over report
func New(report *junit.Report) *Model {
	m := &Model{
		keys:       keys.DefaultKeys(),
		help:       help.New(),
		report:     report,
		expanded:   make(map[string]bool),
		listHeight: defaultListHeight,
	}
	m.table = btable.New(styles.GroupTableColumns).WithRows(m.groupRows())
	m.buildItems()
	return m
}

// Run starts the viewer full screen and blocks until the user quits
func Run(report *junit.Report) error {
	if _, err := tea.NewProgram(New(report), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("failed to run report viewer: %w", err)
	}
	return nil
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Selected returns the highlighted case, or nil when the list is empty
func (m *Model) Selected() *junit.CaseDetail {
	if m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	it := m.items[m.selected]
	if it.Type != ItemTypeCase {
		return nil
	}
	c := m.report.Groups[it.Group].Cases[it.Case]
	return &c
}

// Update handles incoming messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// header, table, help and spacing
		m.listHeight = max(1, msg.Height-len(m.groups())-12)
		m.help.Width = msg.Width
		m.scrollIntoView()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.move(-1)
		case key.Matches(msg, m.keys.Down):
			m.move(1)
		case key.Matches(msg, m.keys.Expand):
			m.setExpanded(true)
		case key.Matches(msg, m.keys.Collapse):
			m.setExpanded(false)
		case key.Matches(msg, m.keys.Toggle):
			if id, ok := m.selectedID(); ok {
				m.expanded[id] = !m.expanded[id]
			}
		case key.Matches(msg, m.keys.Failures):
			m.failuresOnly = !m.failuresOnly
			m.buildItems()
		}
	}
	return m, nil
}

// View renders the model
func (m *Model) View() string {
	if m.report == nil {
		return "No test results available"
	}

	var b strings.Builder
	b.WriteString(m.headerView())
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n\n")
	b.WriteString(m.listView())
	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) headerView() string {
	t := m.report.Totals
	title := "Enhanced Test Report"
	if m.failuresOnly {
		title += " (failures only)"
	}
	summary := fmt.Sprintf("Total: %d   Passed: %d   Failed: %d   Errors: %d   Success: %.1f%%   Time: %.2fs",
		t.Tests, t.Passed, t.Failures, t.Errors, t.SuccessRate(), t.Time)
	return styles.HeaderStyle.Render(title) + "\n" + summary
}

func (m *Model) listView() string {
	if len(m.items) == 0 {
		if m.failuresOnly {
			return styles.PassStyle.Render("No failing cases")
		}
		return "No cases"
	}

	end := min(m.offset+m.listHeight, len(m.items))
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		it := m.items[i]
		group := m.report.Groups[it.Group]
		if it.Type == ItemTypeGroupHeader {
			s := statsOf(group)
			fmt.Fprintf(&b, "%s (%d passed, %d failed, %d errors)\n",
				styles.GroupStyle.Render(group.Category), s.Passed, s.Failed, s.Errors)
			continue
		}

		c := group.Cases[it.Case]
		line := fmt.Sprintf("%s  %s  (%ss)", statusLabel(c.Status), c.MethodName, c.Time)
		if i == m.selected {
			line = styles.SelectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
		if m.expanded[caseID(it)] {
			b.WriteString(styles.DetailStyle.Render(caseDetail(c)) + "\n")
		}
	}
	return b.String()
}

// buildItems flattens the report into the case list, honouring the
// failures-only filter, and keeps the selection on a case row
func (m *Model) buildItems() {
	m.items = m.items[:0]
	if m.report == nil {
		return
	}
	for gi, g := range m.report.Groups {
		var cases []Item
		for ci, c := range g.Cases {
			if m.failuresOnly && c.Status == junit.StatusPass {
				continue
			}
			cases = append(cases, Item{Type: ItemTypeCase, Group: gi, Case: ci})
		}
		if len(cases) == 0 {
			continue
		}
		m.items = append(m.items, Item{Type: ItemTypeGroupHeader, Group: gi})
		m.items = append(m.items, cases...)
	}

	m.selected = 0
	m.offset = 0
	m.move(1)
}

// move shifts the selection by delta case rows, skipping group headers.
// The selection stays put when no case lies in that direction.
func (m *Model) move(delta int) {
	for i := m.selected + delta; i >= 0 && i < len(m.items); i += delta {
		if m.items[i].Type == ItemTypeCase {
			m.selected = i
			break
		}
	}
	m.scrollIntoView()
}

func (m *Model) scrollIntoView() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.listHeight {
		m.offset = m.selected - m.listHeight + 1
	}
	// keep the header of the first visible group on screen
	if m.listHeight > 1 && m.offset > 0 && m.offset == m.selected && m.items[m.offset-1].Type == ItemTypeGroupHeader {
		m.offset--
	}
}

func (m *Model) setExpanded(v bool) {
	if id, ok := m.selectedID(); ok {
		m.expanded[id] = v
	}
}

func (m *Model) selectedID() (string, bool) {
	if m.Selected() == nil {
		return "", false
	}
	return caseID(m.items[m.selected]), true
}

func (m *Model) groupRows() []btable.Row {
	rows := make([]btable.Row, 0, len(m.groups()))
	for _, g := range m.groups() {
		s := statsOf(g)
		rows = append(rows, btable.NewRow(btable.RowData{
			styles.ColumnCategory: g.Category,
			styles.ColumnCases:    s.Cases,
			styles.ColumnPassed:   s.Passed,
			styles.ColumnFailed:   s.Failed,
			styles.ColumnErrors:   s.Errors,
		}))
	}
	return rows
}

func caseID(it Item) string {
	return fmt.Sprintf("%d/%d", it.Group, it.Case)
}

func statusLabel(s junit.Status) string {
	switch s {
	case junit.StatusFail:
		return styles.FailStyle.Render("[FAIL]")
	case junit.StatusError:
		return styles.ErrorStyle.Render("[ERR] ")
	default:
		return styles.PassStyle.Render("[PASS]")
	}
}

func caseDetail(c junit.CaseDetail) string {
	field := func(v, fallback string) string {
		if v == "" {
			return fallback
		}
		return v
	}
	return strings.Join([]string{
		"Test:       " + field(c.DisplayName, c.MethodName),
		"Parameter:  " + field(c.Parameter, "N/A"),
		"Expected:   " + field(c.Expected, "N/A"),
		"Actual:     " + field(c.ActualCategories, "No categories found"),
		"Types:      " + field(c.ExperienceTypes, "None"),
	}, "\n")
}

func (m *Model) groups() []junit.Group {
	if m.report == nil {
		return nil
	}
	return m.report.Groups
}

package viewer

import "testledger-cli/junit"

// ItemType distinguishes the rows of the case list
type ItemType int

const (
	ItemTypeGroupHeader ItemType = iota
	ItemTypeCase
)

// Item is one row of the case list. Group headers are not selectable.
type Item struct {
	Type  ItemType
	Group int
	Case  int
}

// GroupStats are the per-category counts shown in headers and the summary table
type GroupStats struct {
	Cases  int
	Passed int
	Failed int
	Errors int
}

func statsOf(g junit.Group) GroupStats {
	s := GroupStats{Cases: len(g.Cases)}
	for _, c := range g.Cases {
		switch c.Status {
		case junit.StatusFail:
			s.Failed++
		case junit.StatusError:
			s.Errors++
		default:
			s.Passed++
		}
	}
	return s
}

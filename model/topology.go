package model

import (
	"sort"
)

// Topology owns every record of a simulation.  Ids are indices:
// Printers[i].ID == i, Groups[i].ID == i and Students[i].ID == i.
type Topology struct {
	Printers []*Printer
	Groups   []*Group
	Students []*Student
}

// NewTopology builds printers and students for the supplied groups.  Group ids
// are reassigned in ascending range order.  The first validation issue is
// returned as error.
func NewTopology(printers int, groups []*Group) (*Topology, error) {
	ordered := make([]*Group, len(groups))
	for i, g := range groups {
		if g == nil {
			return nil, NewConfigError("groups", "group %d is nil", i)
		}
		clone := *g
		ordered[i] = &clone
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].From < ordered[j].From })
	ret := &Topology{Groups: ordered}
	for i, g := range ret.Groups {
		g.ID = i
	}
	if issues := ret.validate(printers); len(issues) > 0 {
		return nil, issues[0]
	}
	for i := 0; i < printers; i++ {
		ret.Printers = append(ret.Printers, NewPrinter(i))
	}
	for _, g := range ret.Groups {
		for id := g.From; id <= g.To; id++ {
			ret.Students = append(ret.Students, NewStudent(id, g.ID))
		}
	}
	return ret, nil
}

// validate checks that groups partition [0, n) into contiguous, disjoint
// ranges, each with a leader inside its range.  Groups must already be sorted.
func (t *Topology) validate(printers int) []error {
	var issues []error
	if printers <= 0 {
		issues = append(issues, NewConfigError("printers", "must be > 0, got %d", printers))
	}
	if len(t.Groups) == 0 {
		issues = append(issues, NewConfigError("groups", "at least one group is required"))
		return issues
	}
	expectedFrom := 0
	for _, g := range t.Groups {
		if g.To < g.From {
			issues = append(issues, NewConfigError("groups", "group [%d,%d] has an empty range", g.From, g.To))
			continue
		}
		switch {
		case g.From < expectedFrom:
			issues = append(issues, NewConfigError("groups", "group [%d,%d] overlaps previous group ending at %d", g.From, g.To, expectedFrom-1))
		case g.From > expectedFrom:
			issues = append(issues, NewConfigError("groups", "student ids %d..%d are not assigned to any group", expectedFrom, g.From-1))
		}
		if !g.Contains(g.Leader) {
			issues = append(issues, NewConfigError("groups", "leader %d is outside group range [%d,%d]", g.Leader, g.From, g.To))
		}
		if g.To+1 > expectedFrom {
			expectedFrom = g.To + 1
		}
	}
	return issues
}

// StudentSnapshots returns copies of every student.
func (t *Topology) StudentSnapshots() []StudentSnapshot {
	ret := make([]StudentSnapshot, len(t.Students))
	for i, s := range t.Students {
		ret[i] = s.Snapshot()
	}
	return ret
}

// Partition splits students [0, students) into contiguous groups of groupSize.
// The last group takes the remainder.  Leaders are left at From; callers apply
// their leader policy afterwards.
func Partition(students, groupSize int) ([]*Group, error) {
	if students <= 0 {
		return nil, NewConfigError("students", "must be > 0, got %d", students)
	}
	if groupSize <= 0 {
		return nil, NewConfigError("groupSize", "must be > 0, got %d", groupSize)
	}
	var ret []*Group
	for from := 0; from < students; from += groupSize {
		to := from + groupSize - 1
		if to >= students {
			to = students - 1
		}
		ret = append(ret, &Group{ID: len(ret), From: from, To: to, Leader: from})
	}
	return ret, nil
}

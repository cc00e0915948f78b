package model

// Group is a fixed, contiguous range of student ids [From, To] with a single
// leader.  It is immutable once built; the transient ready count and the
// printer currently held live in the coordinator.
type Group struct {
	ID     int `json:"id" yaml:"id"`
	Leader int `json:"leader" yaml:"leader"`
	From   int `json:"from" yaml:"from"`
	To     int `json:"to" yaml:"to"`
}

// Size returns the number of members, leader included.
func (g *Group) Size() int {
	return g.To - g.From + 1
}

// Contains returns true if the student id falls in the group range.
func (g *Group) Contains(studentID int) bool {
	return studentID >= g.From && studentID <= g.To
}

// Members returns member ids in ascending order.
func (g *Group) Members() []int {
	ret := make([]int, 0, g.Size())
	for id := g.From; id <= g.To; id++ {
		ret = append(ret, id)
	}
	return ret
}

// IsLeader returns true if studentID leads the group.
func (g *Group) IsLeader(studentID int) bool {
	return g.Leader == studentID
}

package model

import "sync"

// StudentState represents the lifecycle state of a student
type StudentState string

const (
	StudentStateIdle     StudentState = "idle"
	StudentStatePrinting StudentState = "printing"
	StudentStateDone     StudentState = "done"
)

// next lists the only legal successor of every non-terminal state.
var next = map[StudentState]StudentState{
	StudentStateIdle:     StudentStatePrinting,
	StudentStatePrinting: StudentStateDone,
}

// Student is a simulated actor.  Its state is written only by the student's
// own task and read by observers, hence the lock.
type Student struct {
	ID      int `json:"id"`
	GroupID int `json:"groupId"`

	mu    sync.RWMutex
	state StudentState
}

// NewStudent creates an idle student.
func NewStudent(id, groupID int) *Student {
	return &Student{ID: id, GroupID: groupID, state: StudentStateIdle}
}

// GetState returns the current state.
func (s *Student) GetState() StudentState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Transition moves the student to the supplied state.  Only idle->printing
// and printing->done are legal.
func (s *Student) Transition(to StudentState) (StudentState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from := s.state
	if next[from] != to {
		return from, NewViolation(InvariantLifecycle, "illegal transition %s -> %s", from, to).
			WithGroup(s.GroupID).WithStudent(s.ID)
	}
	s.state = to
	return from, nil
}

// Snapshot returns a lock-free copy suitable for reporting.
func (s *Student) Snapshot() StudentSnapshot {
	return StudentSnapshot{ID: s.ID, GroupID: s.GroupID, State: s.GetState()}
}

// StudentSnapshot is an immutable view of a student.
type StudentSnapshot struct {
	ID      int          `json:"id"`
	GroupID int          `json:"groupId"`
	State   StudentState `json:"state"`
}

package event

import (
	"time"

	"github.com/viant/printshare/internal/clock"
	"github.com/viant/printshare/internal/idgen"
)

// Kind identifies the subject of an event.
type Kind string

const (
	KindStudent Kind = "student"
	KindPrinter Kind = "printer"
	KindGroup   Kind = "group"
)

// Event names.
const (
	NameReady     = "ready"     // student reported ready to its group
	NameQuorum    = "quorum"    // every member of a group is ready
	NameRequested = "requested" // leader asked the pool for a printer
	NameGranted   = "granted"   // pool handed a printer to a group
	NameReleased  = "released"  // leader woke a member
	NameState     = "state"     // student or printer changed state
	NameReturned  = "returned"  // group returned its printer
	NameFinished  = "finished"  // group completed its cycle
)

// Event describes a single observable transition of a run.  Ids that do not
// apply are -1.
type Event struct {
	ID        string    `json:"id"`
	RunID     string    `json:"runId,omitempty"`
	Kind      Kind      `json:"kind"`
	Name      string    `json:"name"`
	SubjectID int       `json:"subjectId"`
	GroupID   int       `json:"groupId"`
	PrinterID int       `json:"printerId"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewEvent creates an event for the supplied subject.
func NewEvent(kind Kind, name string, subjectID int) *Event {
	return &Event{
		ID:        idgen.New(),
		Kind:      kind,
		Name:      name,
		SubjectID: subjectID,
		GroupID:   -1,
		PrinterID: -1,
		CreatedAt: clock.Now(),
	}
}

// WithGroup sets the group id.
func (e *Event) WithGroup(id int) *Event {
	e.GroupID = id
	return e
}

// WithPrinter sets the printer id.
func (e *Event) WithPrinter(id int) *Event {
	e.PrinterID = id
	return e
}

// WithTransition sets the from/to states.
func (e *Event) WithTransition(from, to string) *Event {
	e.From = from
	e.To = to
	return e
}

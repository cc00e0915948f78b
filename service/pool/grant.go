package pool

import "time"

// Grant records a printer hand-off.  Seq is the request sequence number; the
// grant log is kept in grant order, so its Seq values always increase.
type Grant struct {
	Seq         uint64    `json:"seq"`
	GroupID     int       `json:"groupId"`
	PrinterID   int       `json:"printerId"`
	RequestedAt time.Time `json:"requestedAt"`
	GrantedAt   time.Time `json:"grantedAt"`
}

// Wait returns how long the group waited for its printer.
func (g Grant) Wait() time.Duration {
	return g.GrantedAt.Sub(g.RequestedAt)
}

// Handle is held by a group leader between Obtain and Leave.
type Handle struct {
	Grant
	released bool
}

// PrinterID returns the id of the printer held.
func (h *Handle) PrinterID() int {
	return h.Grant.PrinterID
}

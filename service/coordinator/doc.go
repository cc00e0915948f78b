// Package coordinator runs the printing protocol: one task per student, a
// quorum barrier per group and a leader that obtains a printer for its group,
// releases members one at a time and returns the printer once everyone has
// printed.
//
// Every invariant of the protocol is asserted while the run progresses.  A
// broken invariant aborts the run with a *model.Violation; the printer held by
// an aborted group is always returned to the pool.
package coordinator

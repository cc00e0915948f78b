// Package pool arbitrates the shared printers.  It is the only component
// allowed to mutate model.Printer.  Leaders obtain a printer on behalf of
// their group and leave it once every member finished printing; in between,
// members register their print turn with Use/Finish so that the pool can
// assert mutual exclusion.
//
// Waiting groups are served strictly first-come-first-served.  A request is
// numbered and queued in one critical section, and a returned printer is
// passed straight to the oldest queued group, so a newcomer never overtakes
// a queued waiter.  Free capacity is counted by a
// golang.org/x/sync/semaphore.Weighted, and among several idle printers the
// lowest id is always picked.
package pool

// Package printshare simulates students sharing a small pool of printers.
//
// Students are organised in groups of contiguous ids, each with one leader.
// Every student arrives after a Poisson distributed delay and reports ready
// to its group.  Once the whole group is ready, the leader obtains a printer
// (the lowest idle id; waiting groups are served first-come-first-served),
// releases members one at a time and returns the printer after the last one
// finished printing.
//
// The root package exposes the Service facade:
//
//	srv, err := printshare.New(printshare.WithPrinters(2), printshare.WithStudents(12, 3))
//	if err != nil {
//		// invalid configuration
//	}
//	result, err := srv.Runtime().Run(ctx)
//
// Protocol internals live in service/coordinator and service/pool; the
// synchronisation primitives in runtime/rendezvous and runtime/signal.
package printshare

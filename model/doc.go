// Package model contains the in-memory representation of the simulated print
// room: students, printers and the groups that tie them together.
//
// All records are addressed by integer ids that double as indices into the
// slices held by Topology, so the runtime can pass ownership around as plain
// indices instead of relying on package-level tables.  Printer and Group are
// passive; synchronisation is the job of the pool and coordinator services.
package model

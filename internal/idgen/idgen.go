package idgen

import "github.com/google/uuid"

// NewFunc returns a new globally unique identifier as string. Tests replace it
// to get stable run and event identifiers.
var NewFunc = func() string { return uuid.New().String() }

// New returns a new identifier.
func New() string { return NewFunc() }

// NewRunID returns an identifier for a simulation run, prefixed with the
// simulation name so that ids stay readable in logs and traces.
func NewRunID(name string) string {
	if name == "" {
		return New()
	}
	return name + "/" + New()
}

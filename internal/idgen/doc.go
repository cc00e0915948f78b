// Package idgen issues run and event identifiers.  Ids are opaque strings;
// tests swap NewFunc for a deterministic sequence.
package idgen

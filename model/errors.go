package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidConfig is matched by every ConfigError.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrProtocolViolation is matched by every Violation.
	ErrProtocolViolation = errors.New("protocol violation")
)

// Invariant names reported by Violation.
const (
	InvariantQuorum           = "quorum"
	InvariantMutualExclusion  = "mutualExclusion"
	InvariantPrinterOwnership = "printerOwnership"
	InvariantConservation     = "conservation"
	InvariantReleaseOrder     = "releaseOrder"
	InvariantLifecycle        = "lifecycle"
	InvariantOneShot          = "oneShot"
)

// ConfigError describes an invalid setting detected before a simulation
// starts.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("invalid configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// NewConfigError creates a ConfigError with a formatted reason.
func NewConfigError(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Violation reports a broken synchronisation invariant.  It is fatal: the run
// that produced it is aborted.  Ids that do not apply are set to -1.
type Violation struct {
	Invariant string
	GroupID   int
	PrinterID int
	StudentID int
	Detail    string
}

func (v *Violation) Error() string {
	var parts []string
	if v.GroupID >= 0 {
		parts = append(parts, fmt.Sprintf("group=%d", v.GroupID))
	}
	if v.PrinterID >= 0 {
		parts = append(parts, fmt.Sprintf("printer=%d", v.PrinterID))
	}
	if v.StudentID >= 0 {
		parts = append(parts, fmt.Sprintf("student=%d", v.StudentID))
	}
	return fmt.Sprintf("protocol violation [%s] %s: %s", v.Invariant, strings.Join(parts, " "), v.Detail)
}

func (v *Violation) Unwrap() error { return ErrProtocolViolation }

// NewViolation creates a Violation with every id unset.
func NewViolation(invariant, format string, args ...interface{}) *Violation {
	return &Violation{
		Invariant: invariant,
		GroupID:   -1,
		PrinterID: -1,
		StudentID: -1,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// WithGroup sets the group id.
func (v *Violation) WithGroup(id int) *Violation {
	v.GroupID = id
	return v
}

// WithPrinter sets the printer id.
func (v *Violation) WithPrinter(id int) *Violation {
	v.PrinterID = id
	return v
}

// WithStudent sets the student id.
func (v *Violation) WithStudent(id int) *Violation {
	v.StudentID = id
	return v
}

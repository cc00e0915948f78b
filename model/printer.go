package model

// PrinterState represents the state of a printer
type PrinterState string

const (
	PrinterStateIdle PrinterState = "idle"
	PrinterStateBusy PrinterState = "busy"
)

// Printer is a passive resource record.  It has no locking of its own; the
// printer pool is the only component allowed to change State and does so
// under its own mutex.
type Printer struct {
	ID    int          `json:"id"`
	State PrinterState `json:"state"`
}

// NewPrinter creates an idle printer.
func NewPrinter(id int) *Printer {
	return &Printer{ID: id, State: PrinterStateIdle}
}

// IsIdle returns true when the printer can be granted.
func (p *Printer) IsIdle() bool {
	return p.State == PrinterStateIdle
}

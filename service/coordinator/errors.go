package coordinator

import "errors"

// ErrAlreadyStarted is returned when Run is called more than once on the same
// service.
var ErrAlreadyStarted = errors.New("coordinator: run already started")

package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Drivers and clients return these
// (optionally wrapped) so the correlator can decide how to surface them.
//
// These represent factual states, not user input problems:
// - ErrNotFound: slot or resource is not mapped/known
// - ErrInvalidState: a command arrived in a state that does not accept it
// - ErrUnavailable: component stopped or hardware unreachable
// - ErrAlreadyRunning: lifecycle start called twice where that is not allowed
var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidState   = errors.New("invalid state")
	ErrUnavailable    = errors.New("unavailable")
	ErrAlreadyRunning = errors.New("already running")
)

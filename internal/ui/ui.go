// Package ui defines the boundary between the kiosk shell and the
// correlator. Shells implement correlator.Navigator and forward user intents
// through Controller.
package ui

import (
	"sync/atomic"

	"github.com/Surachart01/KMS/internal/domain"
)

// Controller is the set of user intents a shell can issue. Every method only
// posts a command and returns immediately.
type Controller interface {
	SelectSlot(slot domain.SlotRef) error
	RequestReturn() error
	ConfirmReason(text string) error
	Cancel() error
	Home() error
	BrowseKeys() error
}

// Simulator injects a synthetic scan, for test buttons and operators.
type Simulator interface {
	Simulate(subjectID string) bool
}

// Navigator is the surface the correlator drives.
type Navigator interface {
	Navigate(view domain.View)
	ShowError(message string)
}

// Relay forwards navigation to a shell bound after construction. The
// correlator is built before the shell that controls it; calls made before
// Bind are dropped.
type Relay struct {
	target atomic.Pointer[Navigator]
}

// Bind sets the shell that receives navigation.
func (r *Relay) Bind(nav Navigator) {
	r.target.Store(&nav)
}

func (r *Relay) Navigate(view domain.View) {
	if nav := r.target.Load(); nav != nil {
		(*nav).Navigate(view)
	}
}

func (r *Relay) ShowError(message string) {
	if nav := r.target.Load(); nav != nil {
		(*nav).ShowError(message)
	}
}

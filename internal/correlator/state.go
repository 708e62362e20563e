package correlator

import "github.com/Surachart01/KMS/internal/domain"

// Phase is where the current transaction stands.
type Phase string

const (
	PhaseIdle           Phase = "idle"
	PhaseAwaitingScan   Phase = "awaiting_scan"
	PhaseResolving      Phase = "resolving"
	PhaseAwaitingReason Phase = "awaiting_reason"
	PhaseSuccess        Phase = "success"
)

var allPhases = []string{
	string(PhaseIdle),
	string(PhaseAwaitingScan),
	string(PhaseResolving),
	string(PhaseAwaitingReason),
	string(PhaseSuccess),
}

// Mode is the business operation in progress.
type Mode string

const (
	ModeIdle           Mode = "idle"
	ModeAwaitingBorrow Mode = "awaiting_borrow"
	ModeAwaitingReturn Mode = "awaiting_return"
)

func (m Mode) operation() domain.Operation {
	if m == ModeAwaitingReturn {
		return domain.OperationReturn
	}
	return domain.OperationBorrow
}

// State is the correlator's single operation record. SelectedSlot is only
// set in ModeAwaitingBorrow.
type State struct {
	Phase         Phase
	Mode          Mode
	AttemptID     string
	SelectedSlot  *domain.SlotRef
	LastSubjectID string

	// ReasonRequired is set once the backend asked for a reason; Reason is
	// the text submitted for the single retry.
	ReasonRequired bool
	Reason         string
}

func idleState() State {
	return State{Phase: PhaseIdle, Mode: ModeIdle}
}

func (s State) clone() State {
	if s.SelectedSlot != nil {
		slot := *s.SelectedSlot
		s.SelectedSlot = &slot
	}
	return s
}

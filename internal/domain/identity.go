package domain

import "time"

// VerifyTypeFace is the ATTLOG verify mode reported for a face match.
const VerifyTypeFace = "15"

// IdentityEvent is one attendance line pushed by the biometric terminal.
// Only SubjectID is guaranteed; the remaining fields are empty when the
// terminal sent a minimal line.
type IdentityEvent struct {
	SubjectID    string
	Timestamp    string
	Status       string
	VerifyType   string
	SerialNumber string    // terminal serial from the SN query parameter
	ReceivedAt   time.Time // set by the ingestion server, not the terminal
	Simulated    bool
}

// IsFaceScan reports whether the terminal identified the subject by face.
func (e IdentityEvent) IsFaceScan() bool {
	return e.VerifyType == VerifyTypeFace
}

package admin

// StatusResponse is the HTTP response DTO for the correlator state.
type StatusResponse struct {
	Phase          string `json:"phase"`
	Mode           string `json:"mode"`
	AttemptID      string `json:"attempt_id,omitempty"`
	RoomCode       string `json:"room_code,omitempty"`
	SlotNumber     int    `json:"slot_number,omitempty"`
	LastSubjectID  string `json:"last_subject_id,omitempty"`
	ReasonRequired bool   `json:"reason_required"`
	ScannerActive  bool   `json:"scanner_active"`
}

// SimulateResponse reports whether a simulated scan reached the correlator.
type SimulateResponse struct {
	SubjectID string `json:"subject_id"`
	Delivered bool   `json:"delivered"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status   string `json:"status"`
	GPIOMode string `json:"gpio_mode"`
	Slots    []int  `json:"slots"`
}

// CommandResponse acknowledges a command posted to the correlator. The
// outcome is observed through /status.
type CommandResponse struct {
	Command  string `json:"command"`
	Accepted bool   `json:"accepted"`
}

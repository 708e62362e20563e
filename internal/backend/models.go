package backend

import (
	"encoding/json"

	"github.com/Surachart01/KMS/internal/domain"
)

type borrowRequest struct {
	StudentCode string `json:"studentCode"`
	RoomCode    string `json:"roomCode"`
	Reason      string `json:"reason,omitempty"`
}

type returnRequest struct {
	StudentCode string `json:"studentCode"`
}

// envelope is the backend's common response wrapper.
type envelope struct {
	Success   *bool           `json:"success,omitempty"`
	Message   string          `json:"message"`
	ErrorCode string          `json:"error_code"`
	Data      json.RawMessage `json:"data"`
}

type keyDTO struct {
	ID          json.RawMessage `json:"id"`
	RoomCode    string          `json:"roomCode"`
	SlotNumber  int             `json:"slotNumber"`
	IsAvailable bool            `json:"isAvailable"`
}

func (k keyDTO) toDomain() domain.SlotRef {
	return domain.SlotRef{
		ID:         rawID(k.ID),
		RoomCode:   k.RoomCode,
		SlotNumber: k.SlotNumber,
		Available:  k.IsAvailable,
	}
}

type bookingKeyDTO struct {
	RoomCode   string `json:"roomCode"`
	SlotNumber int    `json:"slotNumber"`
}

type borrowDataDTO struct {
	KeySlotNumber int            `json:"keySlotNumber"`
	Key           *bookingKeyDTO `json:"key"`
	Booking       *struct {
		Key *bookingKeyDTO `json:"key"`
	} `json:"booking"`
}

type lateness struct {
	LateMinutes  *int `json:"lateMinutes"`
	PenaltyScore *int `json:"penaltyScore"`
}

type returnDataDTO struct {
	lateness
	KeySlotNumber int            `json:"keySlotNumber"`
	Key           *bookingKeyDTO `json:"key"`
	Booking       *struct {
		lateness
		Key *bookingKeyDTO `json:"key"`
	} `json:"booking"`
}

// rawID renders a JSON id that may be a string or a number.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

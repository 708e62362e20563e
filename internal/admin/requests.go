package admin

import (
	"errors"
	"strings"
)

// BorrowRequest selects the slot to borrow from.
type BorrowRequest struct {
	RoomCode   string `json:"roomCode"`
	SlotNumber int    `json:"slotNumber"`
}

func (r *BorrowRequest) Validate() error {
	r.RoomCode = strings.TrimSpace(r.RoomCode)
	if r.RoomCode == "" {
		return errors.New("roomCode is required")
	}
	if r.SlotNumber <= 0 {
		return errors.New("slotNumber must be positive")
	}
	return nil
}

// ReasonRequest answers the reason page.
type ReasonRequest struct {
	Reason string `json:"reason"`
}

func (r *ReasonRequest) Validate() error {
	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}

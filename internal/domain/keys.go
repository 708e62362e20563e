package domain

// SlotRef is a snapshot of one key slot as reported by the backend.
// It is never cached across key-list views; the backend stays authoritative
// at borrow time.
type SlotRef struct {
	ID         string `json:"id,omitempty"`
	RoomCode   string `json:"roomCode"`
	SlotNumber int    `json:"slotNumber"`
	Available  bool   `json:"isAvailable"`
}

// BorrowReceipt is the successful outcome of a borrow call.
type BorrowReceipt struct {
	SlotNumber int // zero when the backend did not report one
	RoomCode   string
	Message    string
}

// ReturnReceipt is the successful outcome of a return call. Lateness fields
// are zero when the key came back on time.
type ReturnReceipt struct {
	RoomCode     string
	SlotNumber   int
	LateMinutes  int
	PenaltyScore int
	Message      string
}

// IsLate reports whether the return incurred a penalty.
func (r ReturnReceipt) IsLate() bool {
	return r.LateMinutes > 0
}

// BorrowReasons is the catalogue shown when the backend requires a reason.
// ReasonOther asks the user to type their own text.
var BorrowReasons = []string{
	"ลืมกุญแจ",
	"มาทำงานนอกเวลา",
	"ติดต่ออาจารย์",
	"ทำความสะอาด",
	"ซ่อมบำรุง",
	ReasonOther,
}

const ReasonOther = "อื่นๆ"

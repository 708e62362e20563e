package correlator

import (
	"context"
	"time"

	"github.com/Surachart01/KMS/internal/adms"
	"github.com/Surachart01/KMS/internal/domain"
)

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

// Backend is the remote key service.
type Backend interface {
	ListKeys(ctx context.Context) ([]domain.SlotRef, error)
	Borrow(ctx context.Context, studentCode, roomCode, reason string) (*domain.BorrowReceipt, error)
	ReturnKey(ctx context.Context, studentCode string) (*domain.ReturnReceipt, error)
}

// Actuator opens a slot and relocks it on its own timer.
type Actuator interface {
	Unlock(slot int, duration time.Duration) bool
}

// Scanner is the terminal push listener.
type Scanner interface {
	Start(port int, cb adms.Callback) bool
	Stop()
	SetCallback(cb adms.Callback)
}

// Navigator is the UI shell. Implementations must marshal onto their own
// event loop; the correlator calls them from its goroutine.
type Navigator interface {
	Navigate(view domain.View)
	ShowError(message string)
}

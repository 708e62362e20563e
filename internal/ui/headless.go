package ui

import (
	"context"
	"log/slog"
	"sync"

	"github.com/Surachart01/KMS/internal/domain"
)

// Headless is a shell without a display. It keeps the page stack, logs every
// navigation and acknowledges popups immediately. Used on kiosks driven by
// the terminal and the admin command endpoints.
type Headless struct {
	logger *slog.Logger

	mu      sync.Mutex
	stack   []domain.Page
	current domain.View
	popups  []string
}

func NewHeadless(logger *slog.Logger) *Headless {
	return &Headless{
		logger:  logger,
		stack:   []domain.Page{domain.PageHome},
		current: domain.View{Page: domain.PageHome},
	}
}

// Navigate shows view. Home clears the stack; a page already on the stack
// pops back to it.
func (h *Headless) Navigate(view domain.View) {
	h.mu.Lock()
	h.current = view
	h.stack = pushPage(h.stack, view.Page)
	depth := len(h.stack)
	h.mu.Unlock()

	attrs := []any{"page", view.Page, "depth", depth}
	if view.SubjectID != "" {
		attrs = append(attrs, "subject_id", view.SubjectID)
	}
	if view.Slot != nil {
		attrs = append(attrs, "room", view.Slot.RoomCode, "slot", view.Slot.SlotNumber)
	}
	switch {
	case view.Borrow != nil:
		attrs = append(attrs, "unlocked_slot", view.Borrow.SlotNumber, "actuator_failed", view.ActuatorFailed)
	case view.Return != nil:
		attrs = append(attrs, "late_minutes", view.Return.LateMinutes, "penalty_score", view.Return.PenaltyScore)
	case view.Page == domain.PageKeyList:
		attrs = append(attrs, "keys", len(view.Keys))
	}
	h.logger.Info("navigate", attrs...)
}

// ShowError logs message and acknowledges it.
func (h *Headless) ShowError(message string) {
	h.mu.Lock()
	h.popups = append(h.popups, message)
	h.mu.Unlock()
	h.logger.Warn("popup acknowledged", "message", message)
}

// Run blocks until ctx is done.
func (h *Headless) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

// Current returns the last view shown.
func (h *Headless) Current() domain.View {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Stack returns the page stack, bottom first.
func (h *Headless) Stack() []domain.Page {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]domain.Page(nil), h.stack...)
}

// Popups returns every message shown so far.
func (h *Headless) Popups() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.popups...)
}

func pushPage(stack []domain.Page, page domain.Page) []domain.Page {
	if page == domain.PageHome {
		return []domain.Page{domain.PageHome}
	}
	for i, p := range stack {
		if p == page {
			return stack[:i+1]
		}
	}
	return append(stack, page)
}

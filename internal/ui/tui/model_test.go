package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surachart01/KMS/internal/domain"
)

type fakeController struct {
	calls    []string
	selected []domain.SlotRef
	reasons  []string
	err      error
}

func (f *fakeController) SelectSlot(slot domain.SlotRef) error {
	f.calls = append(f.calls, "select")
	f.selected = append(f.selected, slot)
	return f.err
}

func (f *fakeController) RequestReturn() error {
	f.calls = append(f.calls, "return")
	return f.err
}

func (f *fakeController) ConfirmReason(text string) error {
	f.calls = append(f.calls, "reason")
	f.reasons = append(f.reasons, text)
	return f.err
}

func (f *fakeController) Cancel() error {
	f.calls = append(f.calls, "cancel")
	return f.err
}

func (f *fakeController) Home() error {
	f.calls = append(f.calls, "home")
	return f.err
}

func (f *fakeController) BrowseKeys() error {
	f.calls = append(f.calls, "browse")
	return f.err
}

type fakeSimulator struct{ subjects []string }

func (f *fakeSimulator) Simulate(subjectID string) bool {
	f.subjects = append(f.subjects, subjectID)
	return true
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestHomeKeys(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, nil, "")

	m, _ = update(t, m, runes("b"))
	m, _ = update(t, m, runes("r"))
	assert.Equal(t, []string{"browse", "return"}, ctrl.calls)

	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

func TestKeyListSelection(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, nil, "")
	keys := []domain.SlotRef{
		{RoomCode: "A101", SlotNumber: 3, Available: true},
		{RoomCode: "B202", SlotNumber: 4, Available: false},
		{RoomCode: "C303", SlotNumber: 5, Available: true},
	}
	m, _ = update(t, m, viewMsg{view: domain.View{Page: domain.PageKeyList, Keys: keys}})
	assert.Contains(t, m.View(), "A101")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, ctrl.selected, "unavailable key must not be selected")
	assert.Equal(t, msgKeyUnavailable, m.popup)

	m, _ = update(t, m, runes("x"))
	assert.Empty(t, m.popup, "any key dismisses the popup")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, m.cursor, "cursor stops at the last key")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Len(t, ctrl.selected, 1)
	assert.Equal(t, "C303", ctrl.selected[0].RoomCode)
}

func TestScanWaitingTestScanAndCancel(t *testing.T) {
	ctrl := &fakeController{}
	sim := &fakeSimulator{}
	m := NewModel(ctrl, sim, "67130500426")
	m, _ = update(t, m, viewMsg{view: domain.View{Page: domain.PageScanWaitingReturn}})

	m, _ = update(t, m, runes("t"))
	assert.Equal(t, []string{"67130500426"}, sim.subjects)

	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, []string{"cancel"}, ctrl.calls)
}

func TestReasonPicker(t *testing.T) {
	t.Run("predefined reason", func(t *testing.T) {
		ctrl := &fakeController{}
		m := NewModel(ctrl, nil, "")
		m, _ = update(t, m, viewMsg{view: domain.View{Page: domain.PageReason, Reasons: domain.BorrowReasons}})

		_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"ลืมกุญแจ"}, ctrl.reasons)
	})

	t.Run("other reason is typed", func(t *testing.T) {
		ctrl := &fakeController{}
		m := NewModel(ctrl, nil, "")
		m, _ = update(t, m, viewMsg{view: domain.View{Page: domain.PageReason, Reasons: domain.BorrowReasons}})
		for range len(domain.BorrowReasons) - 1 {
			m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
		}

		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		require.True(t, m.typing)
		assert.Empty(t, ctrl.reasons)

		m, _ = update(t, m, runes("สอบ"))
		_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
		assert.Equal(t, []string{"สอบ"}, ctrl.reasons)
	})
}

func TestSuccessCountdown(t *testing.T) {
	ctrl := &fakeController{}
	m := NewModel(ctrl, nil, "")
	view := domain.View{
		Page:             domain.PageSuccess,
		Return:           &domain.ReturnReceipt{LateMinutes: 12, PenaltyScore: 5},
		CountdownSeconds: 2,
	}

	m, cmd := update(t, m, viewMsg{view: view})
	require.NotNil(t, cmd)
	rendered := m.View()
	assert.Contains(t, rendered, "12")
	assert.Contains(t, rendered, "5")
	assert.Contains(t, rendered, "2 วินาที")

	m, cmd = update(t, m, tickMsg{seq: m.successSeq})
	assert.Equal(t, 1, m.countdown)
	require.NotNil(t, cmd)

	m, _ = update(t, m, tickMsg{seq: m.successSeq - 1})
	assert.Equal(t, 1, m.countdown, "ticks from an earlier success view are ignored")

	m, cmd = update(t, m, tickMsg{seq: m.successSeq})
	assert.Zero(t, m.countdown)
	assert.Nil(t, cmd)

	_, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, []string{"home"}, ctrl.calls)
}

func TestActuatorFailureNotice(t *testing.T) {
	m := NewModel(&fakeController{}, nil, "")
	m, _ = update(t, m, viewMsg{view: domain.View{
		Page:           domain.PageSuccess,
		Borrow:         &domain.BorrowReceipt{SlotNumber: 9, Message: "ไม่สามารถเปิดช่องกุญแจได้"},
		ActuatorFailed: true,
	}})

	assert.Contains(t, m.View(), "ไม่สามารถเปิดช่องกุญแจได้")
}

func TestErrorPopupAndControllerErrors(t *testing.T) {
	ctrl := &fakeController{err: errors.New("inbox full: unavailable")}
	m := NewModel(ctrl, nil, "")

	m, _ = update(t, m, runes("b"))
	assert.Equal(t, "inbox full: unavailable", m.popup)

	m, _ = update(t, m, errorMsg{message: "Timeout: Server took too long to respond"})
	assert.True(t, strings.Contains(m.View(), "Timeout"))
}

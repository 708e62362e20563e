package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/internal/ui"
)

const msgKeyUnavailable = "กุญแจห้องนี้ถูกยืมอยู่"

// viewMsg carries a navigation from the correlator.
type viewMsg struct{ view domain.View }

// errorMsg carries a popup from the correlator.
type errorMsg struct{ message string }

// tickMsg advances the success countdown. seq ties it to one success view.
type tickMsg struct{ seq int }

// Model is the bubbletea model for the kiosk.
type Model struct {
	ctrl        ui.Controller
	sim         ui.Simulator
	testSubject string
	keys        KeyMap
	styles      styles

	view   domain.View
	popup  string
	cursor int

	input  textinput.Model
	typing bool

	countdown  int
	successSeq int
	width      int
}

func NewModel(ctrl ui.Controller, sim ui.Simulator, testSubject string) Model {
	input := textinput.New()
	input.Placeholder = "พิมพ์เหตุผล"
	input.CharLimit = 200

	return Model{
		ctrl:        ctrl,
		sim:         sim,
		testSubject: testSubject,
		keys:        DefaultKeyMap,
		styles:      defaultStyles(),
		view:        domain.View{Page: domain.PageHome},
		input:       input,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case viewMsg:
		return m.show(msg.view)

	case errorMsg:
		m.popup = msg.message
		return m, nil

	case tickMsg:
		if msg.seq != m.successSeq || m.view.Page != domain.PageSuccess || m.countdown <= 0 {
			return m, nil
		}
		m.countdown--
		if m.countdown > 0 {
			return m, m.tick()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) show(view domain.View) (tea.Model, tea.Cmd) {
	m.view = view
	m.cursor = 0
	m.typing = false
	m.input.Blur()
	m.input.SetValue("")

	if view.Page == domain.PageSuccess {
		m.successSeq++
		m.countdown = view.CountdownSeconds
		if m.countdown > 0 {
			return m, m.tick()
		}
	}
	return m, nil
}

func (m Model) tick() tea.Cmd {
	seq := m.successSeq
	return tea.Tick(time.Second, func(time.Time) tea.Msg { return tickMsg{seq: seq} })
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.popup != "" {
		m.popup = ""
		return m, nil
	}
	if m.typing {
		return m.handleTyping(msg)
	}

	switch m.view.Page {
	case domain.PageHome:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Browse):
			m.call(m.ctrl.BrowseKeys())
		case key.Matches(msg, m.keys.Return):
			m.call(m.ctrl.RequestReturn())
		}

	case domain.PageKeyList:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.move(-1, len(m.view.Keys))
		case key.Matches(msg, m.keys.Down):
			m.move(1, len(m.view.Keys))
		case key.Matches(msg, m.keys.Select):
			if len(m.view.Keys) == 0 {
				break
			}
			slot := m.view.Keys[m.cursor]
			if !slot.Available {
				m.popup = msgKeyUnavailable
				break
			}
			m.call(m.ctrl.SelectSlot(slot))
		case key.Matches(msg, m.keys.Back):
			m.call(m.ctrl.Home())
		}

	case domain.PageScanWaiting, domain.PageScanWaitingReturn:
		switch {
		case key.Matches(msg, m.keys.Back):
			m.call(m.ctrl.Cancel())
		case key.Matches(msg, m.keys.TestRun):
			if m.sim != nil && m.testSubject != "" {
				m.sim.Simulate(m.testSubject)
			}
		}

	case domain.PageReason:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.move(-1, len(m.view.Reasons))
		case key.Matches(msg, m.keys.Down):
			m.move(1, len(m.view.Reasons))
		case key.Matches(msg, m.keys.Select):
			if len(m.view.Reasons) == 0 {
				break
			}
			reason := m.view.Reasons[m.cursor]
			if reason == domain.ReasonOther {
				m.typing = true
				cmd := m.input.Focus()
				return m, cmd
			}
			m.call(m.ctrl.ConfirmReason(reason))
		case key.Matches(msg, m.keys.Back):
			m.call(m.ctrl.Cancel())
		}

	case domain.PageSuccess:
		if key.Matches(msg, m.keys.Select, m.keys.Back) {
			m.call(m.ctrl.Home())
		}
	}
	return m, nil
}

func (m Model) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.call(m.ctrl.ConfirmReason(m.input.Value()))
		return m, nil
	case tea.KeyEsc:
		m.typing = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) call(err error) {
	if err != nil {
		m.popup = err.Error()
	}
}

func (m *Model) move(delta, n int) {
	if n == 0 {
		return
	}
	m.cursor = min(max(m.cursor+delta, 0), n-1)
}

func (m Model) View() string {
	var body string
	switch m.view.Page {
	case domain.PageHome:
		body = m.viewHome()
	case domain.PageKeyList:
		body = m.viewKeyList()
	case domain.PageScanWaiting, domain.PageScanWaitingReturn:
		body = m.viewScanWaiting()
	case domain.PageConfirmIdentity:
		body = m.viewConfirm()
	case domain.PageReason:
		body = m.viewReason()
	case domain.PageSuccess:
		body = m.viewSuccess()
	default:
		body = string(m.view.Page)
	}

	out := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.title.Render("KMS · ระบบยืม-คืนกุญแจ"),
		"",
		body,
		"",
		m.styles.help.Render(m.help()),
	)
	if m.popup != "" {
		out = lipgloss.JoinVertical(lipgloss.Left, out, "", m.styles.popup.Render(
			m.styles.warning.Render(m.popup)+"\n\n"+m.styles.muted.Render("กดปุ่มใดก็ได้เพื่อปิด")))
	}
	return m.styles.container.Render(out)
}

func (m Model) viewHome() string {
	return m.styles.subtitle.Render("[b] ยืมกุญแจ    [r] คืนกุญแจ")
}

func (m Model) viewKeyList() string {
	if len(m.view.Keys) == 0 {
		return m.styles.muted.Render("ไม่พบกุญแจ")
	}
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("เลือกห้อง"))
	b.WriteString("\n\n")
	for i, k := range m.view.Keys {
		status := "ว่าง"
		if !k.Available {
			status = "ถูกยืม"
		}
		line := fmt.Sprintf("%-8s ช่อง %-3d %s", k.RoomCode, k.SlotNumber, status)
		switch {
		case i == m.cursor:
			line = m.styles.selected.Render(line)
		case !k.Available:
			line = m.styles.muted.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewScanWaiting() string {
	prompt := "กรุณาสแกนใบหน้าเพื่อยืมกุญแจ"
	if m.view.Page == domain.PageScanWaitingReturn {
		prompt = "กรุณาสแกนใบหน้าเพื่อคืนกุญแจ"
	}
	lines := []string{m.styles.subtitle.Render(prompt)}
	if m.view.Slot != nil {
		lines = append(lines, fmt.Sprintf("ห้อง %s (ช่อง %d)", m.view.Slot.RoomCode, m.view.Slot.SlotNumber))
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewConfirm() string {
	return m.styles.subtitle.Render(fmt.Sprintf("รหัส %s\nกำลังตรวจสอบ...", m.view.SubjectID))
}

func (m Model) viewReason() string {
	var b strings.Builder
	b.WriteString(m.styles.subtitle.Render("ไม่พบตารางการใช้ห้อง กรุณาระบุเหตุผล"))
	b.WriteString("\n\n")
	for i, r := range m.view.Reasons {
		if i == m.cursor {
			b.WriteString(m.styles.selected.Render(r))
		} else {
			b.WriteString(r)
		}
		b.WriteString("\n")
	}
	if m.typing {
		b.WriteString("\n")
		b.WriteString(m.input.View())
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewSuccess() string {
	var lines []string
	switch {
	case m.view.Borrow != nil:
		lines = append(lines, m.styles.success.Render("ยืมกุญแจสำเร็จ"))
		lines = append(lines, fmt.Sprintf("ช่อง %d เปิดแล้ว กรุณาหยิบกุญแจ", m.view.Borrow.SlotNumber))
		if m.view.ActuatorFailed {
			lines = append(lines, m.styles.warning.Render(m.view.Borrow.Message))
		}
	case m.view.Return != nil:
		lines = append(lines, m.styles.success.Render("คืนกุญแจสำเร็จ"))
		if m.view.Return.IsLate() {
			lines = append(lines, m.styles.warning.Render(fmt.Sprintf(
				"คืนช้า %d นาที · หักคะแนน %d", m.view.Return.LateMinutes, m.view.Return.PenaltyScore)))
		}
	}
	if m.countdown > 0 {
		lines = append(lines, m.styles.muted.Render(fmt.Sprintf("กลับหน้าหลักใน %d วินาที", m.countdown)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) help() string {
	switch m.view.Page {
	case domain.PageHome:
		return "b borrow · r return · q quit"
	case domain.PageKeyList, domain.PageReason:
		return "↑/↓ move · enter select · esc back"
	case domain.PageScanWaiting, domain.PageScanWaitingReturn:
		return "t test scan · esc cancel"
	case domain.PageSuccess:
		return "enter home"
	}
	return ""
}

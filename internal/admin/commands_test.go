package admin

import (
	"fmt"
	"net/http"

	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/pkg/platform/sentinel"
	"github.com/Surachart01/KMS/pkg/testutil"
)

type fakeController struct {
	calls    []string
	selected []domain.SlotRef
	reasons  []string
	err      error
}

func (f *fakeController) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeController) SelectSlot(slot domain.SlotRef) error {
	f.selected = append(f.selected, slot)
	return f.record("select_slot")
}

func (f *fakeController) RequestReturn() error { return f.record("request_return") }

func (f *fakeController) ConfirmReason(text string) error {
	f.reasons = append(f.reasons, text)
	return f.record("confirm_reason")
}

func (f *fakeController) Cancel() error     { return f.record("cancel") }
func (f *fakeController) Home() error       { return f.record("home") }
func (f *fakeController) BrowseKeys() error { return f.record("browse_keys") }

func (s *HandlerSuite) TestBorrowCommand() {
	s.Run("posts the selected slot", func() {
		rr := testutil.DoRequest(s.router(), testutil.NewJSONRequest(s.T(), http.MethodPost, "/commands/borrow",
			BorrowRequest{RoomCode: " A101 ", SlotNumber: 3}))

		testutil.AssertStatus(s.T(), rr, http.StatusAccepted)
		resp := testutil.UnmarshalResponse[CommandResponse](s.T(), rr)
		s.Equal("borrow", resp.Command)
		s.True(resp.Accepted)
		s.Equal([]domain.SlotRef{{RoomCode: "A101", SlotNumber: 3, Available: true}}, s.ctrl.selected)
	})

	s.Run("rejects a missing room", func() {
		s.ctrl = &fakeController{}
		rr := testutil.DoRequest(s.router(), testutil.NewJSONRequest(s.T(), http.MethodPost, "/commands/borrow",
			BorrowRequest{SlotNumber: 3}))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		s.Empty(s.ctrl.calls)
	})

	s.Run("rejects a non-positive slot", func() {
		s.ctrl = &fakeController{}
		rr := testutil.DoRequest(s.router(), testutil.NewJSONRequest(s.T(), http.MethodPost, "/commands/borrow",
			BorrowRequest{RoomCode: "A101"}))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		s.Empty(s.ctrl.calls)
	})

	s.Run("rejects malformed JSON", func() {
		s.ctrl = &fakeController{}
		rr := testutil.DoRequest(s.router(), testutil.NewTextRequest(s.T(), http.MethodPost, "/commands/borrow", "{"))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		s.Empty(s.ctrl.calls)
	})
}

func (s *HandlerSuite) TestReasonCommand() {
	s.Run("forwards the reason", func() {
		rr := testutil.DoRequest(s.router(), testutil.NewJSONRequest(s.T(), http.MethodPost, "/commands/reason",
			ReasonRequest{Reason: "ลืมกุญแจ"}))

		testutil.AssertStatus(s.T(), rr, http.StatusAccepted)
		s.Equal([]string{"ลืมกุญแจ"}, s.ctrl.reasons)
	})

	s.Run("blank reason is a bad request", func() {
		s.ctrl = &fakeController{}
		rr := testutil.DoRequest(s.router(), testutil.NewJSONRequest(s.T(), http.MethodPost, "/commands/reason",
			ReasonRequest{Reason: "  "}))

		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		s.Empty(s.ctrl.reasons)
	})
}

func (s *HandlerSuite) TestBodylessCommands() {
	cases := []struct {
		path string
		call string
	}{
		{"/commands/return", "request_return"},
		{"/commands/cancel", "cancel"},
		{"/commands/home", "home"},
		{"/commands/keys", "browse_keys"},
	}
	for _, tc := range cases {
		s.Run(tc.path, func() {
			s.ctrl = &fakeController{}
			rr := testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodPost, tc.path))

			testutil.AssertStatus(s.T(), rr, http.StatusAccepted)
			s.Equal([]string{tc.call}, s.ctrl.calls)
		})
	}
}

func (s *HandlerSuite) TestCommandsWhenCorrelatorStopped() {
	s.ctrl = &fakeController{err: fmt.Errorf("inbox full: %w", sentinel.ErrUnavailable)}

	rr := testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodPost, "/commands/return"))

	testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
}

func (s *HandlerSuite) TestCommandsRequirePost() {
	rr := testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodGet, "/commands/home"))

	testutil.AssertStatus(s.T(), rr, http.StatusMethodNotAllowed)
}

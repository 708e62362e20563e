package admin

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/pkg/platform/httputil"
	"github.com/Surachart01/KMS/pkg/platform/sentinel"
)

const maxCommandBody = 4 << 10

// registerCommands mounts the operator controls. They mirror the kiosk
// buttons so a headless kiosk can be driven end to end.
func (h *Handler) registerCommands(r chi.Router) {
	r.Route("/commands", func(r chi.Router) {
		r.Post("/borrow", h.HandleBorrow)
		r.Post("/return", h.HandleReturn)
		r.Post("/reason", h.HandleReason)
		r.Post("/cancel", h.HandleCancel)
		r.Post("/home", h.HandleHome)
		r.Post("/keys", h.HandleBrowseKeys)
	})
}

// HandleBorrow handles POST /commands/borrow.
func (h *Handler) HandleBorrow(w http.ResponseWriter, r *http.Request) {
	var req BorrowRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.accept(w, r, "borrow", h.ctrl.SelectSlot(domain.SlotRef{
		RoomCode:   req.RoomCode,
		SlotNumber: req.SlotNumber,
		Available:  true,
	}))
}

// HandleReturn handles POST /commands/return.
func (h *Handler) HandleReturn(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, "return", h.ctrl.RequestReturn())
}

// HandleReason handles POST /commands/reason.
func (h *Handler) HandleReason(w http.ResponseWriter, r *http.Request) {
	var req ReasonRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.accept(w, r, "reason", h.ctrl.ConfirmReason(req.Reason))
}

// HandleCancel handles POST /commands/cancel.
func (h *Handler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, "cancel", h.ctrl.Cancel())
}

// HandleHome handles POST /commands/home.
func (h *Handler) HandleHome(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, "home", h.ctrl.Home())
}

// HandleBrowseKeys handles POST /commands/keys.
func (h *Handler) HandleBrowseKeys(w http.ResponseWriter, r *http.Request) {
	h.accept(w, r, "keys", h.ctrl.BrowseKeys())
}

type validator interface {
	Validate() error
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req validator) bool {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBody))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeBadRequest, "unreadable body")
		return false
	}
	if err := json.Unmarshal(body, req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeBadRequest, "invalid JSON body")
		return false
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeBadRequest, err.Error())
		return false
	}
	return true
}

// accept reports a posted command. Commands that are invalid for the current
// phase are still accepted; the correlator logs and ignores them.
func (h *Handler) accept(w http.ResponseWriter, r *http.Request, command string, err error) {
	ctx := r.Context()
	if err != nil {
		h.logger.WarnContext(ctx, "operator command not delivered",
			"request_id", middleware.GetReqID(ctx),
			"command", command,
			"error", err,
		)
		if errors.Is(err, sentinel.ErrUnavailable) {
			httputil.WriteError(w, http.StatusServiceUnavailable, httputil.CodeUnavailable, err.Error())
			return
		}
		httputil.WriteError(w, http.StatusInternalServerError, httputil.CodeInternal, err.Error())
		return
	}
	h.logger.InfoContext(ctx, "operator command posted",
		"request_id", middleware.GetReqID(ctx),
		"command", command,
	)
	httputil.WriteJSON(w, http.StatusAccepted, CommandResponse{Command: command, Accepted: true})
}

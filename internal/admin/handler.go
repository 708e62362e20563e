// Package admin is the operator HTTP surface: health, Prometheus metrics,
// the correlator state, kiosk commands and the scan simulation port. It listens separately
// from the terminal-facing server so operators never share the "always OK"
// catch-all.
package admin

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Surachart01/KMS/internal/correlator"
	"github.com/Surachart01/KMS/internal/ui"
	"github.com/Surachart01/KMS/pkg/platform/httputil"
)

// Scanner is the part of the push server the admin surface needs.
type Scanner interface {
	Simulate(subjectID string) bool
	Running() bool
}

// StateReader exposes the correlator state.
type StateReader interface {
	Snapshot(ctx context.Context) (correlator.State, error)
}

// Handler wires operator endpoints.
type Handler struct {
	ctrl           ui.Controller
	scanner        Scanner
	state          StateReader
	gatherer       prometheus.Gatherer
	defaultSubject string
	gpioMode       string
	slots          []int
	logger         *slog.Logger
}

// Config carries the static facts the handler reports.
type Config struct {
	DefaultSubject string
	GPIOMode       string
	Slots          []int
}

func New(cfg Config, ctrl ui.Controller, scanner Scanner, state StateReader, gatherer prometheus.Gatherer, logger *slog.Logger) *Handler {
	return &Handler{
		ctrl:           ctrl,
		scanner:        scanner,
		state:          state,
		gatherer:       gatherer,
		defaultSubject: cfg.DefaultSubject,
		gpioMode:       cfg.GPIOMode,
		slots:          cfg.Slots,
		logger:         logger,
	}
}

// Register mounts admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.HandleHealth)
	r.Get("/status", h.HandleStatus)
	r.Post("/simulate/scan", h.HandleSimulateScan)
	h.registerCommands(r)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{}))
}

// NewRouter builds the admin router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h.Register(r)
	return r
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:   "ok",
		GPIOMode: h.gpioMode,
		Slots:    h.slots,
	})
}

// HandleStatus handles GET /status.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	st, err := h.state.Snapshot(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "status snapshot failed",
			"request_id", middleware.GetReqID(ctx),
			"error", err,
		)
		httputil.WriteError(w, http.StatusServiceUnavailable, httputil.CodeUnavailable, err.Error())
		return
	}

	resp := StatusResponse{
		Phase:          string(st.Phase),
		Mode:           string(st.Mode),
		AttemptID:      st.AttemptID,
		LastSubjectID:  st.LastSubjectID,
		ReasonRequired: st.ReasonRequired,
		ScannerActive:  h.scanner.Running(),
	}
	if st.SelectedSlot != nil {
		resp.RoomCode = st.SelectedSlot.RoomCode
		resp.SlotNumber = st.SelectedSlot.SlotNumber
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleSimulateScan handles POST /simulate/scan?subject=...
// The scan goes through the same gate as a terminal push, so it is refused
// with 409 while the kiosk is not waiting for one.
func (h *Handler) HandleSimulateScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	subject := strings.TrimSpace(r.URL.Query().Get("subject"))
	if subject == "" {
		subject = h.defaultSubject
	}
	if subject == "" {
		httputil.WriteError(w, http.StatusBadRequest, httputil.CodeBadRequest, "subject is required")
		return
	}

	delivered := h.scanner.Simulate(subject)
	h.logger.InfoContext(ctx, "scan simulated",
		"request_id", middleware.GetReqID(ctx),
		"subject_id", subject,
		"delivered", delivered,
	)

	status := http.StatusOK
	if !delivered {
		status = http.StatusConflict
	}
	httputil.WriteJSON(w, status, SimulateResponse{SubjectID: subject, Delivered: delivered})
}

// Package correlator owns the kiosk's transaction state. It decides whether
// an identity event from the terminal is accepted, drives the backend and the
// actuator for accepted events, and tells the UI shell where to go next.
//
// All state lives on the goroutine running Run. Public methods only post to
// its inbox; backend calls run on background goroutines and post their
// results back, tagged with the attempt they were started for, so a result
// that arrives after the user has moved on is discarded.
package correlator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Surachart01/KMS/internal/backend"
	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/internal/platform/clock"
	"github.com/Surachart01/KMS/internal/platform/metrics"
	"github.com/Surachart01/KMS/pkg/platform/sentinel"
)

const defaultInboxSize = 64

// User-facing messages that do not come from the backend.
const (
	msgScannerUnavailable = "ไม่สามารถเริ่มเครื่องสแกนได้"
	msgReasonRequired     = "กรุณาระบุเหตุผล"
	msgActuatorFailed     = "ไม่สามารถเปิดช่องกุญแจได้ กรุณาติดต่อเจ้าหน้าที่"
)

// Config holds the timings and port the correlator needs.
type Config struct {
	ScanPort       int
	UnlockDuration time.Duration
	SuccessDisplay time.Duration
}

// Correlator is the transaction state machine.
type Correlator struct {
	cfg      Config
	backend  Backend
	actuator Actuator
	scanner  Scanner
	nav      Navigator

	logger  *slog.Logger
	clock   clock.Clock
	metrics *metrics.Metrics

	inbox   chan any
	done    chan struct{}
	running atomic.Bool
	tasks   sync.WaitGroup
	runTask func(func())

	// owned by the Run goroutine
	state         State
	browseAttempt string
	successTimer  *clock.Timer
	taskCtx       context.Context
}

type Option func(*Correlator)

func WithLogger(logger *slog.Logger) Option {
	return func(c *Correlator) {
		c.logger = logger
	}
}

func WithClock(cl clock.Clock) Option {
	return func(c *Correlator) {
		c.clock = cl
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Correlator) {
		c.metrics = m
	}
}

func WithInboxSize(n int) Option {
	return func(c *Correlator) {
		if n > 0 {
			c.inbox = make(chan any, n)
		}
	}
}

func New(cfg Config, be Backend, act Actuator, sc Scanner, nav Navigator, opts ...Option) *Correlator {
	c := &Correlator{
		cfg:      cfg,
		backend:  be,
		actuator: act,
		scanner:  sc,
		nav:      nav,
		logger:   slog.Default(),
		clock:    clock.Real(),
		inbox:    make(chan any, defaultInboxSize),
		done:     make(chan struct{}),
		state:    idleState(),
		taskCtx:  context.Background(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.metrics == nil {
		c.metrics = metrics.Nop()
	}
	c.runTask = func(fn func()) {
		c.tasks.Add(1)
		go func() {
			defer c.tasks.Done()
			fn()
		}()
	}
	return c
}

// Run processes commands until ctx is cancelled. It may be called once.
func (c *Correlator) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return sentinel.ErrAlreadyRunning
	}

	taskCtx, cancelTasks := context.WithCancel(ctx)
	c.taskCtx = taskCtx
	c.metrics.SetPhase(string(PhaseIdle), allPhases)
	c.logger.Info("correlator started")

	defer func() {
		c.stopSuccessTimer()
		c.scanner.Stop()
		cancelTasks()
		close(c.done)
		c.tasks.Wait()
		c.logger.Info("correlator stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-c.inbox:
			c.handle(msg)
		}
	}
}

// SelectSlot starts a borrow for slot and waits for a scan.
func (c *Correlator) SelectSlot(slot domain.SlotRef) error {
	return c.post(selectSlotCmd{slot: slot})
}

// RequestReturn starts a return and waits for a scan.
func (c *Correlator) RequestReturn() error {
	return c.post(requestReturnCmd{})
}

// ConfirmReason retries the pending borrow once with text as the reason.
func (c *Correlator) ConfirmReason(text string) error {
	return c.post(confirmReasonCmd{text: text})
}

// Cancel abandons a borrow or return that has not reached the backend yet.
func (c *Correlator) Cancel() error {
	return c.post(cancelCmd{})
}

// Home resets to idle from any phase.
func (c *Correlator) Home() error {
	return c.post(homeCmd{})
}

// BrowseKeys fetches the key list and shows it.
func (c *Correlator) BrowseKeys() error {
	return c.post(browseKeysCmd{})
}

// OnIdentityEvent is the scanner callback. It never blocks: the event is
// dropped if the inbox is full.
func (c *Correlator) OnIdentityEvent(evt domain.IdentityEvent) {
	if err := c.post(identityCmd{evt: evt}); err != nil {
		c.logger.Warn("identity event dropped", "subject_id", evt.SubjectID, "error", err)
	}
}

// Snapshot returns a copy of the current state.
func (c *Correlator) Snapshot(ctx context.Context) (State, error) {
	reply := make(chan State, 1)
	if err := c.post(snapshotCmd{reply: reply}); err != nil {
		return State{}, err
	}
	select {
	case s := <-reply:
		return s, nil
	case <-c.done:
		return State{}, sentinel.ErrUnavailable
	case <-ctx.Done():
		return State{}, ctx.Err()
	}
}

func (c *Correlator) post(msg any) error {
	select {
	case <-c.done:
		return sentinel.ErrUnavailable
	default:
	}
	select {
	case c.inbox <- msg:
		return nil
	default:
		return fmt.Errorf("inbox full: %w", sentinel.ErrUnavailable)
	}
}

// deliver is used by background tasks; results are never dropped while the
// loop is alive.
func (c *Correlator) deliver(msg any) {
	select {
	case c.inbox <- msg:
	case <-c.done:
	}
}

func (c *Correlator) handle(msg any) {
	switch m := msg.(type) {
	case selectSlotCmd:
		c.selectSlot(m.slot)
	case requestReturnCmd:
		c.requestReturn()
	case identityCmd:
		c.onIdentity(m.evt)
	case confirmReasonCmd:
		c.confirmReason(m.text)
	case cancelCmd:
		c.cancel()
	case homeCmd:
		c.goHome("home requested")
	case browseKeysCmd:
		c.browseKeys()
	case snapshotCmd:
		m.reply <- c.state.clone()
	case successElapsed:
		if c.state.Phase == PhaseSuccess && c.state.AttemptID == m.attempt {
			c.goHome("success display elapsed")
		}
	case keysResult:
		c.onKeys(m)
	case borrowResult:
		c.onBorrow(m)
	case returnResult:
		c.onReturn(m)
	default:
		c.logger.Error("unknown correlator message", "type", fmt.Sprintf("%T", msg))
	}
}

func (c *Correlator) rejectCommand(cmd string) {
	c.logger.Warn("command rejected", "command", cmd, "phase", c.state.Phase,
		"error", sentinel.ErrInvalidState)
}

func (c *Correlator) setPhase(p Phase) {
	c.state.Phase = p
	c.metrics.SetPhase(string(p), allPhases)
}

func (c *Correlator) newAttempt() string {
	return uuid.NewString()
}

func (c *Correlator) selectSlot(slot domain.SlotRef) {
	if c.state.Phase != PhaseIdle {
		c.rejectCommand("select_slot")
		return
	}
	c.state = State{
		Mode:         ModeAwaitingBorrow,
		AttemptID:    c.newAttempt(),
		SelectedSlot: &slot,
	}
	c.awaitScan(domain.View{
		Page:      domain.PageScanWaiting,
		Operation: domain.OperationBorrow,
		Slot:      &slot,
	})
}

func (c *Correlator) requestReturn() {
	if c.state.Phase != PhaseIdle {
		c.rejectCommand("request_return")
		return
	}
	c.state = State{
		Mode:      ModeAwaitingReturn,
		AttemptID: c.newAttempt(),
	}
	c.awaitScan(domain.View{
		Page:      domain.PageScanWaitingReturn,
		Operation: domain.OperationReturn,
	})
}

func (c *Correlator) awaitScan(view domain.View) {
	c.setPhase(PhaseAwaitingScan)
	if !c.scanner.Start(c.cfg.ScanPort, c.OnIdentityEvent) {
		c.logger.Error("scanner failed to start", "port", c.cfg.ScanPort)
		c.fail(msgScannerUnavailable)
		return
	}
	c.logger.Info("awaiting scan", "mode", c.state.Mode, "attempt_id", c.state.AttemptID)
	c.nav.Navigate(view)
}

func (c *Correlator) onIdentity(evt domain.IdentityEvent) {
	if c.state.Phase != PhaseAwaitingScan {
		c.metrics.IncrementStray()
		c.logger.Warn("stray identity event ignored", "subject_id", evt.SubjectID, "phase", c.state.Phase)
		return
	}

	c.scanner.Stop()
	c.state.LastSubjectID = evt.SubjectID
	c.setPhase(PhaseResolving)
	c.logger.Info("identity accepted",
		"subject_id", evt.SubjectID,
		"face", evt.IsFaceScan(),
		"simulated", evt.Simulated,
		"mode", c.state.Mode,
		"attempt_id", c.state.AttemptID)

	c.nav.Navigate(domain.View{
		Page:      domain.PageConfirmIdentity,
		Operation: c.state.Mode.operation(),
		SubjectID: evt.SubjectID,
		Slot:      c.state.clone().SelectedSlot,
	})

	switch c.state.Mode {
	case ModeAwaitingBorrow:
		c.startBorrow("", false)
	case ModeAwaitingReturn:
		c.startReturn()
	}
}

func (c *Correlator) startBorrow(reason string, withReason bool) {
	attempt := c.state.AttemptID
	subject := c.state.LastSubjectID
	room := c.state.SelectedSlot.RoomCode
	ctx := backend.ContextWithRequestID(c.taskCtx, attempt)

	c.runTask(func() {
		receipt, err := c.backend.Borrow(ctx, subject, room, reason)
		c.deliver(borrowResult{attempt: attempt, receipt: receipt, err: err, withReason: withReason})
	})
}

func (c *Correlator) startReturn() {
	attempt := c.state.AttemptID
	subject := c.state.LastSubjectID
	ctx := backend.ContextWithRequestID(c.taskCtx, attempt)

	c.runTask(func() {
		receipt, err := c.backend.ReturnKey(ctx, subject)
		c.deliver(returnResult{attempt: attempt, receipt: receipt, err: err})
	})
}

// current reports whether a result for attempt still applies.
func (c *Correlator) current(attempt string) bool {
	if c.state.Phase == PhaseResolving && c.state.AttemptID == attempt {
		return true
	}
	c.metrics.IncrementStale()
	c.logger.Info("stale result discarded", "attempt_id", attempt, "phase", c.state.Phase)
	return false
}

func (c *Correlator) onBorrow(r borrowResult) {
	if !c.current(r.attempt) {
		return
	}
	if r.err != nil {
		if backend.IsReasonRequired(r.err) && !r.withReason {
			c.state.ReasonRequired = true
			c.setPhase(PhaseAwaitingReason)
			c.logger.Info("borrow requires a reason", "subject_id", c.state.LastSubjectID)
			c.nav.Navigate(domain.View{
				Page:      domain.PageReason,
				Operation: domain.OperationBorrow,
				SubjectID: c.state.LastSubjectID,
				Slot:      c.state.clone().SelectedSlot,
				Reasons:   domain.BorrowReasons,
			})
			return
		}
		c.fail(backend.UserMessage(r.err))
		return
	}

	slot := *c.state.SelectedSlot
	receipt := *r.receipt
	if receipt.SlotNumber == 0 {
		receipt.SlotNumber = slot.SlotNumber
	}
	slot.SlotNumber = receipt.SlotNumber

	unlocked := c.actuator.Unlock(receipt.SlotNumber, c.cfg.UnlockDuration)
	if !unlocked {
		c.logger.Warn("borrow recorded but slot did not open", "slot", receipt.SlotNumber,
			"subject_id", c.state.LastSubjectID)
		receipt.Message = msgActuatorFailed
	}

	c.enterSuccess(domain.View{
		Page:           domain.PageSuccess,
		Operation:      domain.OperationBorrow,
		SubjectID:      c.state.LastSubjectID,
		Slot:           &slot,
		Borrow:         &receipt,
		ActuatorFailed: !unlocked,
	})
}

func (c *Correlator) onReturn(r returnResult) {
	if !c.current(r.attempt) {
		return
	}
	if r.err != nil {
		c.fail(backend.UserMessage(r.err))
		return
	}
	receipt := *r.receipt
	c.logger.Info("key returned", "subject_id", c.state.LastSubjectID,
		"late_minutes", receipt.LateMinutes, "penalty_score", receipt.PenaltyScore)
	c.enterSuccess(domain.View{
		Page:      domain.PageSuccess,
		Operation: domain.OperationReturn,
		SubjectID: c.state.LastSubjectID,
		Return:    &receipt,
	})
}

func (c *Correlator) enterSuccess(view domain.View) {
	c.setPhase(PhaseSuccess)
	view.CountdownSeconds = int(c.cfg.SuccessDisplay / time.Second)
	c.nav.Navigate(view)

	attempt := c.state.AttemptID
	c.stopSuccessTimer()
	c.successTimer = c.clock.AfterFunc(c.cfg.SuccessDisplay, func() {
		c.deliver(successElapsed{attempt: attempt})
	})
}

func (c *Correlator) confirmReason(text string) {
	if c.state.Phase != PhaseAwaitingReason {
		c.rejectCommand("confirm_reason")
		return
	}
	text = strings.TrimSpace(text)
	if text == "" || text == domain.ReasonOther {
		c.nav.ShowError(msgReasonRequired)
		return
	}
	c.state.Reason = text
	c.setPhase(PhaseResolving)
	c.nav.Navigate(domain.View{
		Page:      domain.PageConfirmIdentity,
		Operation: domain.OperationBorrow,
		SubjectID: c.state.LastSubjectID,
		Slot:      c.state.clone().SelectedSlot,
	})
	c.startBorrow(text, true)
}

func (c *Correlator) cancel() {
	switch c.state.Phase {
	case PhaseAwaitingScan, PhaseAwaitingReason:
		c.goHome("cancelled")
	default:
		c.rejectCommand("cancel")
	}
}

func (c *Correlator) browseKeys() {
	if c.state.Phase != PhaseIdle {
		c.rejectCommand("browse_keys")
		return
	}
	attempt := c.newAttempt()
	c.browseAttempt = attempt
	ctx := backend.ContextWithRequestID(c.taskCtx, attempt)
	c.runTask(func() {
		keys, err := c.backend.ListKeys(ctx)
		c.deliver(keysResult{attempt: attempt, keys: keys, err: err})
	})
}

func (c *Correlator) onKeys(r keysResult) {
	if c.state.Phase != PhaseIdle || c.browseAttempt != r.attempt {
		c.metrics.IncrementStale()
		c.logger.Info("stale key list discarded", "attempt_id", r.attempt)
		return
	}
	c.browseAttempt = ""
	if r.err != nil {
		c.nav.ShowError(backend.UserMessage(r.err))
		c.nav.Navigate(domain.View{Page: domain.PageHome})
		return
	}
	c.nav.Navigate(domain.View{Page: domain.PageKeyList, Keys: r.keys})
}

// fail surfaces message and lands on home.
func (c *Correlator) fail(message string) {
	c.nav.ShowError(message)
	c.goHome("failed")
}

func (c *Correlator) goHome(why string) {
	c.scanner.Stop()
	c.stopSuccessTimer()
	if c.state.Phase != PhaseIdle {
		c.logger.Info("returning to idle", "reason", why, "attempt_id", c.state.AttemptID)
	}
	c.state = idleState()
	c.browseAttempt = ""
	c.setPhase(PhaseIdle)
	c.nav.Navigate(domain.View{Page: domain.PageHome})
}

func (c *Correlator) stopSuccessTimer() {
	if c.successTimer != nil {
		c.successTimer.Stop()
		c.successTimer = nil
	}
}

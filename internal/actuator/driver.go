package actuator

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Surachart01/KMS/internal/platform/clock"
	"github.com/Surachart01/KMS/internal/platform/metrics"
	"github.com/Surachart01/KMS/pkg/platform/sentinel"
)

// Driver owns the slot lines. The slot map is read-only after New.
type Driver struct {
	slots   map[int]int
	out     Output
	clock   clock.Clock
	logger  *slog.Logger
	metrics *metrics.Metrics

	mu      sync.Mutex
	pending map[int]*relock
	closed  bool
}

type relock struct {
	timer *clock.Timer
	gen   uint64
}

type Option func(*Driver)

func WithLogger(logger *slog.Logger) Option {
	return func(d *Driver) {
		d.logger = logger
	}
}

func WithClock(c clock.Clock) Option {
	return func(d *Driver) {
		d.clock = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

// New configures every mapped line low. A line that fails to configure is
// logged and left in the map; unlocking it will report the write error.
func New(slots map[int]int, out Output, opts ...Option) *Driver {
	d := &Driver{
		slots:   make(map[int]int, len(slots)),
		out:     out,
		clock:   clock.Real(),
		logger:  slog.Default(),
		pending: make(map[int]*relock),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.metrics == nil {
		d.metrics = metrics.Nop()
	}
	for slot, pin := range slots {
		d.slots[slot] = pin
	}
	for _, slot := range d.Slots() {
		if err := d.out.Configure(d.slots[slot]); err != nil {
			d.logger.Error("gpio configure failed", "slot", slot, "pin", d.slots[slot], "error", err)
		}
	}
	return d
}

// Slots returns the mapped slot numbers in ascending order.
func (d *Driver) Slots() []int {
	out := make([]int, 0, len(d.slots))
	for slot := range d.slots {
		out = append(out, slot)
	}
	sort.Ints(out)
	return out
}

// Unlock raises the slot's line and schedules it to drop after duration.
// It returns false, without panicking, when the slot is unmapped or the line
// cannot be driven. Unlocking an open slot re-arms its relock timer.
func (d *Driver) Unlock(slot int, duration time.Duration) bool {
	pin, ok := d.slots[slot]
	if !ok {
		d.logger.Error("unlock failed", "slot", slot, "error", fmt.Errorf("slot %d: %w", slot, sentinel.ErrNotFound))
		d.metrics.ObserveUnlock(false)
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Warn("unlock after cleanup ignored", "slot", slot)
		d.metrics.ObserveUnlock(false)
		return false
	}

	if err := d.out.Write(pin, true); err != nil {
		d.logger.Error("unlock failed", "slot", slot, "pin", pin, "error", err)
		d.metrics.ObserveUnlock(false)
		return false
	}

	var gen uint64 = 1
	if prev, open := d.pending[slot]; open {
		prev.timer.Stop()
		gen = prev.gen + 1
		d.logger.Info("relock re-armed", "slot", slot)
	}
	d.pending[slot] = &relock{
		timer: d.clock.AfterFunc(duration, func() { d.relock(slot, gen) }),
		gen:   gen,
	}

	d.logger.Info("slot unlocked", "slot", slot, "pin", pin, "relock_after", duration)
	d.metrics.ObserveUnlock(true)
	return true
}

func (d *Driver) relock(slot int, gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cur, ok := d.pending[slot]
	if !ok || cur.gen != gen {
		return
	}
	delete(d.pending, slot)
	d.lockLine(slot)
}

// lockLine must be called with mu held.
func (d *Driver) lockLine(slot int) {
	pin := d.slots[slot]
	if err := d.out.Write(pin, false); err != nil {
		d.logger.Error("relock failed", "slot", slot, "pin", pin, "error", err)
		return
	}
	d.logger.Info("slot locked", "slot", slot, "pin", pin)
}

// Open reports whether slot is waiting on its relock timer.
func (d *Driver) Open(slot int) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.pending[slot]
	return ok
}

// Cleanup cancels pending relocks and drives every line low. Further unlocks
// fail. Safe to call more than once.
func (d *Driver) Cleanup() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for slot, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, slot)
	}
	for _, slot := range d.Slots() {
		d.lockLine(slot)
	}
	d.logger.Info("actuator cleaned up", "slots", len(d.slots))
}

package actuator

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Surachart01/KMS/internal/platform/config"
)

// Output is a set of digital output lines addressed by BCM number.
type Output interface {
	// Configure puts pin into output mode, driven low.
	Configure(pin int) error
	// Write drives pin high or low.
	Write(pin int, high bool) error
}

const pinctrlTool = "pinctrl"

// DetectMode resolves GPIO_MODE. Auto picks pinctrl when the tool is on PATH.
func DetectMode(mode string, lookPath func(string) (string, error)) string {
	switch strings.ToLower(mode) {
	case config.GPIOModePinctrl:
		return config.GPIOModePinctrl
	case config.GPIOModeMock:
		return config.GPIOModeMock
	}
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	if _, err := lookPath(pinctrlTool); err != nil {
		return config.GPIOModeMock
	}
	return config.GPIOModePinctrl
}

// NewOutput builds the Output for a resolved mode.
func NewOutput(mode string, logger *slog.Logger) Output {
	if mode == config.GPIOModePinctrl {
		return NewPinctrl(logger)
	}
	return NewMock(logger)
}

// Runner executes an external command.
type Runner func(ctx context.Context, name string, args ...string) error

func execRunner(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Pinctrl drives lines through `pinctrl set <pin> ...`.
type Pinctrl struct {
	run     Runner
	timeout time.Duration
	logger  *slog.Logger
}

func NewPinctrl(logger *slog.Logger) *Pinctrl {
	return &Pinctrl{run: execRunner, timeout: 2 * time.Second, logger: logger}
}

// WithRunner replaces command execution, for tests.
func (p *Pinctrl) WithRunner(run Runner) *Pinctrl {
	p.run = run
	return p
}

func (p *Pinctrl) Configure(pin int) error {
	return p.set(pin, "op", "dl")
}

func (p *Pinctrl) Write(pin int, high bool) error {
	if high {
		return p.set(pin, "dh")
	}
	return p.set(pin, "dl")
}

func (p *Pinctrl) set(pin int, args ...string) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	full := append([]string{"set", strconv.Itoa(pin)}, args...)
	if err := p.run(ctx, pinctrlTool, full...); err != nil {
		return err
	}
	p.logger.Debug("gpio set", "pin", pin, "args", strings.Join(args, " "))
	return nil
}

// Mock logs intended effects and remembers the last level of every line.
type Mock struct {
	mu     sync.Mutex
	levels map[int]bool
	writes int
	logger *slog.Logger
}

func NewMock(logger *slog.Logger) *Mock {
	return &Mock{levels: make(map[int]bool), logger: logger}
}

func (m *Mock) Configure(pin int) error {
	m.mu.Lock()
	m.levels[pin] = false
	m.mu.Unlock()
	m.logger.Debug("[MOCK] gpio configured", "pin", pin)
	return nil
}

func (m *Mock) Write(pin int, high bool) error {
	m.mu.Lock()
	m.levels[pin] = high
	m.writes++
	m.mu.Unlock()
	level := "LOW"
	if high {
		level = "HIGH"
	}
	m.logger.Info("[MOCK] gpio write", "pin", pin, "level", level)
	return nil
}

// High reports the last level written to pin.
func (m *Mock) High(pin int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.levels[pin]
}

// Writes counts Write calls.
func (m *Mock) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

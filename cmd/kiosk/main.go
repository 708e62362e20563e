package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/Surachart01/KMS/internal/actuator"
	"github.com/Surachart01/KMS/internal/admin"
	"github.com/Surachart01/KMS/internal/adms"
	"github.com/Surachart01/KMS/internal/backend"
	"github.com/Surachart01/KMS/internal/correlator"
	"github.com/Surachart01/KMS/internal/platform/config"
	"github.com/Surachart01/KMS/internal/platform/httpserver"
	"github.com/Surachart01/KMS/internal/platform/logger"
	"github.com/Surachart01/KMS/internal/platform/metrics"
	"github.com/Surachart01/KMS/internal/ui"
	"github.com/Surachart01/KMS/internal/ui/tui"
)

const (
	shutdownTimeout = 5 * time.Second
	tuiLogFile      = "kiosk.log"
)

// shell is what the composition root needs from either UI.
type shell interface {
	ui.Navigator
	Run(ctx context.Context) error
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "kiosk:", err)
		os.Exit(1)
	}
}

// run wires the kiosk and blocks until a signal arrives or a component
// fails. Business logic lives in the internal packages.
func run() error {
	envCfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	cfg, err := applyFlags(envCfg, os.Args[1:])
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	slots, err := actuator.LoadSlotMap(cfg.Actuator.SlotMapFile)
	if err != nil {
		return err
	}
	gpioMode := actuator.DetectMode(cfg.Actuator.Mode, nil)
	driver := actuator.New(slots, actuator.NewOutput(gpioMode, log),
		actuator.WithLogger(log),
		actuator.WithMetrics(m),
	)
	defer driver.Cleanup()
	log.Info("actuator ready", "gpio_mode", gpioMode, "slots", driver.Slots())

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Token,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithLogger(log),
		backend.WithMetrics(m),
	)
	if !client.IsConfigured() {
		log.Warn("API_TOKEN is not configured, backend calls will be refused")
	}

	scanner := adms.New(adms.WithLogger(log), adms.WithMetrics(m))

	relay := &ui.Relay{}
	corr := correlator.New(correlator.Config{
		ScanPort:       cfg.Scanner.Port,
		UnlockDuration: cfg.Actuator.UnlockDuration,
		SuccessDisplay: cfg.SuccessDisplay,
	}, client, driver, scanner, relay,
		correlator.WithLogger(log),
		correlator.WithMetrics(m),
	)

	var sh shell
	switch strings.ToLower(cfg.UI) {
	case config.UITUI:
		sh = tui.New(corr, scanner, cfg.Scanner.TestScanSubject, tea.WithAltScreen())
	default:
		sh = ui.NewHeadless(log)
	}
	relay.Bind(sh)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return corr.Run(gctx)
	})

	g.Go(func() error {
		err := sh.Run(gctx)
		if err != nil {
			return fmt.Errorf("ui: %w", err)
		}
		// The TUI returns when the operator quits; take the process down with it.
		return errShellExited
	})

	if cfg.AdminAddr != "" {
		h := admin.New(admin.Config{
			DefaultSubject: cfg.Scanner.TestScanSubject,
			GPIOMode:       gpioMode,
			Slots:          driver.Slots(),
		}, corr, scanner, corr, reg, log)
		srv := httpserver.New(cfg.AdminAddr, admin.NewRouter(h))
		ln, err := httpserver.Listen(cfg.AdminAddr)
		if err != nil {
			return err
		}
		g.Go(func() error {
			log.Info("admin server listening", "addr", ln.Addr().String())
			if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("admin server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	log.Info("kiosk started",
		"ui", cfg.UI,
		"adms_port", cfg.Scanner.Port,
		"backend", cfg.Backend.BaseURL,
	)

	err = g.Wait()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if serr := scanner.Shutdown(shutdownCtx); serr != nil {
		log.Error("scan server shutdown failed", "error", serr)
	}

	if err != nil && !errors.Is(err, errShellExited) {
		return err
	}
	log.Info("kiosk stopped")
	return nil
}

var errShellExited = errors.New("shell exited")

// newLogger writes to stdout, except under the TUI where stdout belongs to
// the screen and logs go to a file.
func newLogger(cfg config.Kiosk) (*slog.Logger, func(), error) {
	if !strings.EqualFold(cfg.UI, config.UITUI) {
		return logger.New(cfg.LogLevel, cfg.LogFormat), func() {}, nil
	}
	f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logger.NewWithWriter(f, cfg.LogLevel, cfg.LogFormat), func() { _ = f.Close() }, nil
}

package adms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/internal/platform/clock"
	"github.com/Surachart01/KMS/internal/platform/httpserver"
	"github.com/Surachart01/KMS/internal/platform/metrics"
)

// Callback receives accepted identity events. It runs on the HTTP handler
// goroutine while the server holds its dispatch lock, so it must return
// quickly and must not call Start, Stop or SetCallback.
type Callback func(domain.IdentityEvent)

// Server is the terminal-facing push listener.
type Server struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
	clock   clock.Clock
	host    string
	pollLog rate.Sometimes

	// mu is held for reading for the whole of a callback invocation, so
	// Stop (which takes it for writing) returns only once no callback can
	// still be running.
	mu       sync.RWMutex
	callback Callback
	active   bool

	lifecycle sync.Mutex
	srv       *http.Server
	ln        net.Listener
	serveErr  chan error
}

type Option func(*Server)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *Server) {
		s.clock = c
	}
}

// WithHost restricts the bind address; the default listens on all
// interfaces because the terminal pushes over the LAN.
func WithHost(host string) Option {
	return func(s *Server) {
		s.host = host
	}
}

func New(opts ...Option) *Server {
	s := &Server{
		logger:  slog.Default(),
		clock:   clock.Real(),
		pollLog: rate.Sometimes{Interval: time.Minute},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.Nop()
	}
	return s
}

// Start binds port and begins serving in the background. It reports false,
// never an error, when the bind fails. Calling Start on an already bound
// server re-arms it with cb instead of rebinding.
func (s *Server) Start(port int, cb Callback) bool {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()

	if s.srv != nil {
		s.mu.Lock()
		replaced := s.callback != nil
		s.callback = cb
		s.active = true
		s.mu.Unlock()
		s.logger.Info("scan server already bound, callback substituted",
			"addr", s.ln.Addr().String(), "replaced", replaced)
		return true
	}

	addr := net.JoinHostPort(s.host, fmt.Sprintf("%d", port))
	ln, err := httpserver.Listen(addr)
	if err != nil {
		s.logger.Error("failed to start scan server", "addr", addr, "error", err)
		return false
	}

	srv := httpserver.New(addr, s.Handler())
	s.srv = srv
	s.ln = ln
	s.serveErr = make(chan error, 1)

	s.mu.Lock()
	s.callback = cb
	s.active = true
	s.mu.Unlock()

	go func() {
		err := srv.Serve(ln)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("scan server stopped unexpectedly", "error", err)
		}
		s.serveErr <- err
	}()

	s.logger.Info("scan server started", "addr", ln.Addr().String())
	return true
}

// Stop deafens the server. The listener stays bound and keeps answering
// "OK", but once Stop returns no callback will be invoked until the next
// Start.
func (s *Server) Stop() {
	s.mu.Lock()
	wasActive := s.active
	s.active = false
	s.mu.Unlock()
	if wasActive {
		s.logger.Info("scan server stopping")
	}
}

// SetCallback swaps the callback. It applies to the next dispatched line and
// does not change whether the server is listening.
func (s *Server) SetCallback(cb Callback) {
	s.mu.Lock()
	s.callback = cb
	s.mu.Unlock()
	s.logger.Info("scan callback updated")
}

// Running reports whether identity events are currently being dispatched.
func (s *Server) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// Addr returns the bound address, or "" before the first successful Start.
func (s *Server) Addr() string {
	s.lifecycle.Lock()
	defer s.lifecycle.Unlock()
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Simulate injects a synthetic identity event through the same gate as a
// terminal push. It reports whether the event reached a callback.
func (s *Server) Simulate(subjectID string) bool {
	evt := domain.IdentityEvent{
		SubjectID:  subjectID,
		Timestamp:  s.clock.Now().Format(time.DateTime),
		ReceivedAt: s.clock.Now(),
		Simulated:  true,
	}
	s.logger.Info("simulated scan", "subject_id", subjectID)
	return s.dispatch(evt)
}

// Shutdown closes the underlying listener. It is meant for process exit;
// during normal operation use Stop.
func (s *Server) Shutdown(ctx context.Context) error {
	s.Stop()

	s.lifecycle.Lock()
	srv, done := s.srv, s.serveErr
	s.lifecycle.Unlock()
	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown scan server: %w", err)
	}
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

// dispatch hands evt to the callback if the server is listening. Panics in
// the callback are logged and swallowed so the terminal still gets "OK".
func (s *Server) dispatch(evt domain.IdentityEvent) (delivered bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.active || s.callback == nil {
		s.metrics.IncrementDeaf()
		s.logger.Debug("scan discarded, server stopped", "subject_id", evt.SubjectID)
		return false
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scan callback panicked", "subject_id", evt.SubjectID, "panic", r)
			delivered = false
		}
	}()

	s.logger.Info("dispatching scan", "subject_id", evt.SubjectID, "verify_type", evt.VerifyType)
	s.metrics.IncrementDispatched()
	s.callback(evt)
	return true
}

package correlator_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Surachart01/KMS/internal/actuator"
	"github.com/Surachart01/KMS/internal/adms"
	"github.com/Surachart01/KMS/internal/backend"
	"github.com/Surachart01/KMS/internal/correlator"
	"github.com/Surachart01/KMS/internal/domain"
	"github.com/Surachart01/KMS/internal/platform/clock"
	"github.com/Surachart01/KMS/internal/platform/metrics"
	"github.com/Surachart01/KMS/pkg/testutil"
)

type viewLog struct {
	mu    sync.Mutex
	views []domain.View
}

func (v *viewLog) Navigate(view domain.View) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.views = append(v.views, view)
}

func (v *viewLog) ShowError(string) {}

func (v *viewLog) last() domain.View {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.views) == 0 {
		return domain.View{}
	}
	return v.views[len(v.views)-1]
}

type kiosk struct {
	corr    *correlator.Correlator
	scanner *adms.Server
	gpio    *actuator.Mock
	clock   *clock.FakeClock
	nav     *viewLog
	borrows chan map[string]any
}

func newKiosk(t *testing.T, backendHandler http.HandlerFunc) *kiosk {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New(prometheus.NewRegistry())
	fake := clock.Fake(time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC))

	api := httptest.NewServer(backendHandler)
	t.Cleanup(api.Close)

	k := &kiosk{
		scanner: adms.New(adms.WithLogger(logger), adms.WithMetrics(m), adms.WithClock(fake), adms.WithHost("127.0.0.1")),
		gpio:    actuator.NewMock(logger),
		clock:   fake,
		nav:     &viewLog{},
	}
	driver := actuator.New(actuator.DefaultSlotMap(), k.gpio,
		actuator.WithLogger(logger), actuator.WithClock(fake), actuator.WithMetrics(m))
	client := backend.New(api.URL, "token", backend.WithLogger(logger), backend.WithMetrics(m))

	k.corr = correlator.New(correlator.Config{
		ScanPort:       0,
		UnlockDuration: 5 * time.Second,
		SuccessDisplay: 10 * time.Second,
	}, client, driver, k.scanner, k.nav,
		correlator.WithLogger(logger), correlator.WithClock(fake), correlator.WithMetrics(m))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- k.corr.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
		shutdownCtx, stop := context.WithTimeout(context.Background(), time.Second)
		defer stop()
		require.NoError(t, k.scanner.Shutdown(shutdownCtx))
		driver.Cleanup()
	})
	return k
}

func (k *kiosk) push(t *testing.T, line string) {
	t.Helper()
	rr := testutil.DoRequest(k.scanner.Handler(),
		testutil.NewTextRequest(t, http.MethodPost, "/iclock/cdata?SN=CQZ7224460246&table=ATTLOG", line+"\n"))
	testutil.AssertTerminalOK(t, rr)
}

func (k *kiosk) waitPhase(t *testing.T, phase correlator.Phase) correlator.State {
	t.Helper()
	var st correlator.State
	require.Eventually(t, func() bool {
		var err error
		st, err = k.corr.Snapshot(context.Background())
		return err == nil && st.Phase == phase
	}, 2*time.Second, 5*time.Millisecond, "phase %s not reached", phase)
	return st
}

func TestScenario_BorrowWithReason(t *testing.T) {
	var mu sync.Mutex
	var reasons []string
	k := newKiosk(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		reasons = append(reasons, body["reason"])
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if body["reason"] == "" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"success":false,"error_code":"REQUIRE_REASON","message":"ไม่มีตารางสอน"}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"keySlotNumber":3}}`)
	})

	testutil.Given(t, "a borrow awaiting a scan for room A101", func(t *testing.T) {
		require.NoError(t, k.corr.SelectSlot(domain.SlotRef{RoomCode: "A101", SlotNumber: 3}))
		k.waitPhase(t, correlator.PhaseAwaitingScan)

		testutil.When(t, "the terminal pushes a face scan without a schedule", func(t *testing.T) {
			k.push(t, "67130500426\t2024-01-01 10:00:00\t1\t15")
			k.waitPhase(t, correlator.PhaseAwaitingReason)

			testutil.Then(t, "the reason page is shown and a repeated push is not delivered", func(t *testing.T) {
				assert.Equal(t, domain.PageReason, k.nav.last().Page)
				assert.False(t, k.scanner.Running())
				k.push(t, "67130500426\t2024-01-01 10:00:00\t1\t15")
			})
		})

		testutil.When(t, "the user confirms a reason", func(t *testing.T) {
			require.NoError(t, k.corr.ConfirmReason("ลืมกุญแจ"))
			k.waitPhase(t, correlator.PhaseSuccess)

			testutil.Then(t, "slot 3 opens and relocks after the unlock duration", func(t *testing.T) {
				assert.True(t, k.gpio.High(22))
				k.clock.Advance(5 * time.Second)
				assert.False(t, k.gpio.High(22))
			})

			testutil.Then(t, "exactly one retry carried the reason", func(t *testing.T) {
				mu.Lock()
				defer mu.Unlock()
				assert.Equal(t, []string{"", "ลืมกุญแจ"}, reasons)
			})
		})

		testutil.When(t, "the success countdown elapses", func(t *testing.T) {
			k.clock.Advance(5 * time.Second)
			k.waitPhase(t, correlator.PhaseIdle)

			testutil.Then(t, "the kiosk is home", func(t *testing.T) {
				assert.Equal(t, domain.PageHome, k.nav.last().Page)
			})
		})
	})
}

func TestScenario_SimulatedReturn(t *testing.T) {
	k := newKiosk(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/return", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"success":true,"data":{"lateMinutes":12,"penaltyScore":5}}`)
	})

	testutil.Given(t, "a return awaiting a scan", func(t *testing.T) {
		require.NoError(t, k.corr.RequestReturn())
		k.waitPhase(t, correlator.PhaseAwaitingScan)

		testutil.When(t, "an operator simulates a scan", func(t *testing.T) {
			require.True(t, k.scanner.Simulate("S2"))
			k.waitPhase(t, correlator.PhaseSuccess)

			testutil.Then(t, "lateness and penalty are displayed without opening a slot", func(t *testing.T) {
				view := k.nav.last()
				require.NotNil(t, view.Return)
				assert.Equal(t, 12, view.Return.LateMinutes)
				assert.Equal(t, 5, view.Return.PenaltyScore)
				assert.Zero(t, k.gpio.Writes())
			})
		})
	})
}

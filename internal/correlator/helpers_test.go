package correlator

import (
	"sync"

	"github.com/Surachart01/KMS/internal/adms"
	"github.com/Surachart01/KMS/internal/domain"
)

// fakeScanner behaves like adms.Server's gate: pushes are delivered only
// while started.
type fakeScanner struct {
	mu        sync.Mutex
	running   bool
	cb        adms.Callback
	starts    int
	stops     int
	failStart bool
}

func (f *fakeScanner) Start(_ int, cb adms.Callback) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failStart {
		return false
	}
	f.running = true
	f.cb = cb
	f.starts++
	return true
}

func (f *fakeScanner) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.running = false
	f.stops++
}

func (f *fakeScanner) SetCallback(cb adms.Callback) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cb = cb
}

func (f *fakeScanner) push(subjectID string) bool {
	f.mu.Lock()
	cb, running := f.cb, f.running
	f.mu.Unlock()
	if !running || cb == nil {
		return false
	}
	cb(domain.IdentityEvent{SubjectID: subjectID, VerifyType: domain.VerifyTypeFace})
	return true
}

func (f *fakeScanner) isRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.running
}

type recordingNavigator struct {
	mu     sync.Mutex
	views  []domain.View
	errors []string
}

func (n *recordingNavigator) Navigate(view domain.View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.views = append(n.views, view)
}

func (n *recordingNavigator) ShowError(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.errors = append(n.errors, message)
}

func (n *recordingNavigator) pages() []domain.Page {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]domain.Page, 0, len(n.views))
	for _, v := range n.views {
		out = append(out, v.Page)
	}
	return out
}

func (n *recordingNavigator) last() domain.View {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.views) == 0 {
		return domain.View{}
	}
	return n.views[len(n.views)-1]
}

func (n *recordingNavigator) shownErrors() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.errors...)
}

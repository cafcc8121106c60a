package view

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vango-dev/crispy/pkg/toast"
)

// Exiter removes dismissed toasts once their exit transition would have
// finished. It stands in for a browser's transition-end callback on hosts
// that have no client, and backs up the live host when no page reports
// the transition.
type Exiter struct {
	toaster *toast.Toaster
	clock   clockwork.Clock
	delay   time.Duration

	mu      sync.Mutex
	leaving map[toast.ID]clockwork.Timer
	stopped bool

	unsubscribe func()
}

// ExiterOption configures an Exiter.
type ExiterOption func(*Exiter)

// WithExitDelay sets how long a hidden toast is kept before removal
// (default: LeaveDuration). Hosts whose clients report finished
// transitions themselves use a longer delay as a fallback.
func WithExitDelay(d time.Duration) ExiterOption {
	return func(e *Exiter) {
		if d > 0 {
			e.delay = d
		}
	}
}

// NewExiter starts watching t. Call Stop to detach.
func NewExiter(t *toast.Toaster, opts ...ExiterOption) *Exiter {
	e := &Exiter{
		toaster: t,
		clock:   t.Config().Clock,
		delay:   LeaveDuration,
		leaving: make(map[toast.ID]clockwork.Timer),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.unsubscribe = t.Subscribe(e.observe)
	return e
}

// observe runs on the toaster's loop for every snapshot.
func (e *Exiter) observe(s toast.Snapshot) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}

	present := make(map[toast.ID]bool, len(s.Records))
	for _, r := range s.Records {
		present[r.ID] = true
		if r.Visible {
			continue
		}
		if _, ok := e.leaving[r.ID]; ok {
			continue
		}
		id := r.ID
		e.leaving[id] = e.clock.AfterFunc(e.delay, func() {
			e.toaster.Remove(id)
		})
	}

	for id := range e.leaving {
		if !present[id] {
			delete(e.leaving, id)
		}
	}
}

// Leaving returns the number of toasts waiting for removal.
func (e *Exiter) Leaving() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.leaving)
}

// Stop detaches the exiter and cancels pending removals.
func (e *Exiter) Stop() {
	e.mu.Lock()
	e.stopped = true
	for id, t := range e.leaving {
		t.Stop()
		delete(e.leaving, id)
	}
	e.mu.Unlock()

	e.unsubscribe()
}

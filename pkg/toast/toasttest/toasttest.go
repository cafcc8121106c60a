// Package toasttest provides a fake-clock harness for testing code built
// on toast.Toaster.
//
//	h := toasttest.NewHarness(t, toast.WithDuration(time.Second))
//	id := h.Show("hello")
//	h.Advance(time.Second)
//	h.WaitHidden(id)
package toasttest

import (
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/vdom"
)

// WaitTimeout bounds every Wait helper.
var WaitTimeout = 2 * time.Second

// FakeClock is the subset of clockwork's fake clock the harness uses.
type FakeClock interface {
	clockwork.Clock
	Advance(d time.Duration)
}

// Harness wraps a Toaster running on a fake clock.
type Harness struct {
	Toaster *toast.Toaster
	Clock   FakeClock

	tb       testing.TB
	recorder *Recorder
}

// NewHarness creates a Toaster on a fake clock. Options are applied after
// the harness defaults, so they may override the clock or the logger.
// The toaster is closed when the test ends.
func NewHarness(tb testing.TB, opts ...toast.Option) *Harness {
	tb.Helper()

	clock := clockwork.NewFakeClock()
	rec := &Recorder{}
	base := []toast.Option{
		toast.WithClock(clock),
		toast.WithLogger(DiscardLogger()),
		toast.WithObserver(rec),
	}
	t := toast.New(append(base, opts...)...)
	tb.Cleanup(t.Close)

	return &Harness{
		Toaster:  t,
		Clock:    clock,
		tb:       tb,
		recorder: rec,
	}
}

// DiscardLogger returns a logger that drops everything.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Text returns a render function showing msg.
func Text(msg string) toast.RenderFunc {
	return func(r toast.Record) *vdom.VNode {
		return vdom.Text(msg)
	}
}

// Show enqueues a text toast and waits until it is in the store.
func (h *Harness) Show(msg string) toast.ID {
	h.tb.Helper()
	id := h.Toaster.Toast(toast.Options{Render: Text(msg)})
	h.Toaster.Flush()
	return id
}

// Advance moves the fake clock forward.
func (h *Harness) Advance(d time.Duration) {
	h.Clock.Advance(d)
}

// Record returns the current record for id after draining the loop.
func (h *Harness) Record(id toast.ID) (toast.Record, bool) {
	h.Toaster.Flush()
	return h.Toaster.Snapshot().Get(id)
}

// Snapshot drains the loop and returns the current snapshot.
func (h *Harness) Snapshot() toast.Snapshot {
	h.Toaster.Flush()
	return h.Toaster.Snapshot()
}

// WaitFor polls the snapshot until cond holds or WaitTimeout passes.
func (h *Harness) WaitFor(desc string, cond func(toast.Snapshot) bool) toast.Snapshot {
	h.tb.Helper()
	deadline := time.Now().Add(WaitTimeout)
	for {
		s := h.Snapshot()
		if cond(s) {
			return s
		}
		if time.Now().After(deadline) {
			h.tb.Fatalf("timed out waiting for %s (snapshot %+v)", desc, s)
		}
		time.Sleep(time.Millisecond)
	}
}

// WaitHidden waits until the toast with id is in the store and not visible.
func (h *Harness) WaitHidden(id toast.ID) {
	h.tb.Helper()
	h.WaitFor("toast "+id.String()+" hidden", func(s toast.Snapshot) bool {
		r, ok := s.Get(id)
		return ok && !r.Visible
	})
}

// WaitGone waits until the toast with id has been removed.
func (h *Harness) WaitGone(id toast.ID) {
	h.tb.Helper()
	h.WaitFor("toast "+id.String()+" removed", func(s toast.Snapshot) bool {
		_, ok := s.Get(id)
		return !ok
	})
}

// WaitTimers waits until exactly n dismissal timers are pending, then
// drains the loop so that dismissals from fired timers have run.
func (h *Harness) WaitTimers(n int) {
	h.tb.Helper()
	deadline := time.Now().Add(WaitTimeout)
	for h.Toaster.Pending() != n {
		if time.Now().After(deadline) {
			h.tb.Fatalf("timed out waiting for %d pending timers, have %d", n, h.Toaster.Pending())
		}
		time.Sleep(time.Millisecond)
	}
	h.Toaster.Flush()
}

// Events returns the recorded lifecycle events of the given kind.
func (h *Harness) Events(kind toast.EventKind) []toast.Event {
	h.Toaster.Flush()
	return h.recorder.Events(kind)
}

// Recorder is an Observer that keeps every event it sees.
type Recorder struct {
	mu     sync.Mutex
	events []toast.Event
}

// Observe implements toast.Observer.
func (r *Recorder) Observe(e toast.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns the recorded events of the given kind.
func (r *Recorder) Events(kind toast.EventKind) []toast.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []toast.Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

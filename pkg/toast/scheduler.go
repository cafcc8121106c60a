package toast

import (
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

const (
	// DefaultDuration is how long a toast stays visible by default.
	DefaultDuration = 3 * time.Second

	// MinDuration is the shortest time a toast stays visible: the length
	// of the enter transition.
	MinDuration = 300 * time.Millisecond

	// MaxDurationMS is the largest millisecond count that converts to a
	// time.Duration without overflow.
	MaxDurationMS = math.MaxInt64 / int64(time.Millisecond)
)

// EffectiveDuration returns d raised to MinDuration.
func EffectiveDuration(d time.Duration) time.Duration {
	if d < MinDuration {
		return MinDuration
	}
	return d
}

// Scheduler dismisses toasts after they have been visible long enough.
// Timers fire on the clock's goroutines; the dismissal itself is handed to
// the dispatcher so that it runs on the event loop.
type Scheduler struct {
	clock      clockwork.Clock
	dispatcher Dispatcher
	dismiss    func(ID)

	mu      sync.Mutex
	timers  map[ID]clockwork.Timer
	stopped bool
}

// NewScheduler creates a scheduler that calls dismiss through d.
func NewScheduler(clock clockwork.Clock, d Dispatcher, dismiss func(ID)) *Scheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Scheduler{
		clock:      clock,
		dispatcher: d,
		dismiss:    dismiss,
		timers:     make(map[ID]clockwork.Timer),
	}
}

// Arm starts a one-shot timer that dismisses id after
// EffectiveDuration(duration). The timer fires at most once. Arming an id
// that already has a pending timer is a no-op.
func (s *Scheduler) Arm(id ID, duration time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	if _, ok := s.timers[id]; ok {
		return
	}

	var fired atomic.Bool
	s.timers[id] = s.clock.AfterFunc(EffectiveDuration(duration), func() {
		if !fired.CompareAndSwap(false, true) {
			return
		}
		s.dispatcher.Dispatch(func() {
			s.dismiss(id)
		})

		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
	})
}

// Pending returns the number of timers that have not fired yet. A timer
// stops counting as pending only after its dismissal has been dispatched.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every pending timer and rejects further Arm calls.
// It is used when the owning Toaster closes.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

package toast

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// Dispatcher queues work onto an event loop.
type Dispatcher interface {
	// Dispatch queues fn and reports whether it was accepted.
	Dispatch(fn func()) bool
}

// Loop runs queued functions one at a time on a single goroutine.
// Everything that touches a Toaster's store runs here, which is what lets
// the store go without locks.
//
// Work goes through a buffered channel. When the channel is full it
// spills into an overflow list that the loop drains once the channel is
// empty, so Dispatch never blocks, not even when a callback running on
// the loop dispatches more work.
type Loop struct {
	queue     chan func()
	wake      chan struct{}
	done      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once
	started   atomic.Bool
	logger    *slog.Logger

	mu       sync.Mutex
	overflow []func()
}

// NewLoop creates a loop with a queue of the given size.
// The loop does nothing until Run is called.
func NewLoop(size int, logger *slog.Logger) *Loop {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		queue:  make(chan func(), size),
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
		logger: logger,
	}
}

// Run processes queued functions until Close is called.
// Only the first call runs the loop; later calls return immediately.
func (l *Loop) Run() {
	if !l.started.CompareAndSwap(false, true) {
		return
	}
	defer close(l.exited)
	for {
		if l.closed() {
			return
		}

		// Channel entries are always older than overflow entries.
		select {
		case fn := <-l.queue:
			l.execute(fn)
			continue
		default:
		}

		if batch := l.takeOverflow(); len(batch) > 0 {
			for _, fn := range batch {
				if l.closed() {
					return
				}
				l.execute(fn)
			}
			continue
		}

		select {
		case fn := <-l.queue:
			l.execute(fn)
		case <-l.wake:
		case <-l.done:
			return
		}
	}
}

func (l *Loop) closed() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}

// takeOverflow returns the overflow list if the channel is empty.
// Sends to the channel happen under mu, so the emptiness check holds.
func (l *Loop) takeOverflow() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) > 0 {
		return nil
	}
	batch := l.overflow
	l.overflow = nil
	return batch
}

// execute runs fn with panic recovery so one bad callback can't stop the loop.
func (l *Loop) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// Dispatch queues fn to run on the loop. It is safe to call from any
// goroutine, including from functions running on the loop, and never
// blocks. Functions run in dispatch order and are never dropped while the
// loop is open. It returns false once the loop has been closed.
func (l *Loop) Dispatch(fn func()) bool {
	if l.closed() {
		return false
	}

	l.mu.Lock()
	if len(l.overflow) == 0 {
		select {
		case l.queue <- fn:
			l.mu.Unlock()
			return true
		default:
		}
	}
	l.overflow = append(l.overflow, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Backlog returns the number of functions waiting to run.
func (l *Loop) Backlog() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue) + len(l.overflow)
}

// Flush blocks until everything dispatched before the call has run.
// It must not be called from the loop itself.
func (l *Loop) Flush() {
	ran := make(chan struct{})
	if !l.Dispatch(func() { close(ran) }) {
		return
	}
	select {
	case <-ran:
	case <-l.exited:
	}
}

// Close stops the loop and waits for the running function, if any, to
// finish. Queued and overflowed functions that have not started are
// discarded.
// Close must not be called from the loop itself.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		close(l.done)
		// A loop that never ran has nothing to wait for.
		if l.started.CompareAndSwap(false, true) {
			close(l.exited)
		}
	})
	<-l.exited
}

// Done is closed when Close is called.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

package toast

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Toaster is the toast provider. It owns the store, the dismissal
// scheduler and the event loop all mutations run on.
//
// All methods are safe for concurrent use. Toast, Dismiss and Remove only
// queue work; its effect is visible in Snapshot once the loop has run it
// (Flush waits for that).
type Toaster struct {
	config   Config
	logger   *slog.Logger
	store    *Store
	loop     *Loop
	sched    *Scheduler
	observer Observer

	snapshot atomic.Pointer[Snapshot]

	// Loop-confined state.
	version uint64
	subs    map[uint64]func(Snapshot)
	nextSub uint64

	closeOnce sync.Once
}

// New creates a Toaster and starts its event loop. Call Close to stop it.
func New(opts ...Option) *Toaster {
	config := DefaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.normalize()

	t := &Toaster{
		config:   config,
		logger:   config.Logger.With("component", "toaster"),
		store:    NewStore(config.Position),
		observer: observers(config.Observers),
		subs:     make(map[uint64]func(Snapshot)),
	}
	t.store.now = config.Clock.Now
	t.loop = NewLoop(config.QueueSize, t.logger)
	t.sched = NewScheduler(config.Clock, t.loop, func(id ID) {
		t.dismiss(id, DismissTimer)
	})
	t.snapshot.Store(&Snapshot{Position: config.Position})

	go t.loop.Run()
	return t
}

// Config returns the effective configuration.
func (t *Toaster) Config() Config {
	return t.config
}

// Position returns the configured position.
func (t *Toaster) Position() Position {
	return t.config.Position
}

// Toast shows a new toast and returns its id. The toast is dismissed
// automatically after max(duration, MinDuration), where duration is
// opts.Duration or the provider default.
func (t *Toaster) Toast(opts Options) ID {
	id := t.store.NextID()
	if !t.loop.Dispatch(func() { t.enqueue(id, opts) }) {
		t.logger.Warn("toast after close discarded", "id", uint64(id))
	}
	return id
}

// Dismiss hides the toast with the given id. Unknown or already hidden
// ids are ignored.
func (t *Toaster) Dismiss(id ID) {
	t.loop.Dispatch(func() { t.dismiss(id, DismissManual) })
}

// Remove drops the toast with the given id. The presentation layer calls
// this once the exit transition of a dismissed toast has finished.
// Unknown ids are ignored.
func (t *Toaster) Remove(id ID) {
	t.loop.Dispatch(func() { t.remove(id) })
}

// Snapshot returns the most recently published state. It never blocks.
func (t *Toaster) Snapshot() Snapshot {
	return *t.snapshot.Load()
}

// Subscribe registers fn to receive every published snapshot, starting
// with the current one. fn runs on the event loop: it may call Toast,
// Dismiss and Remove but must not call Flush or Close. The returned
// function unsubscribes; snapshots already queued may still arrive.
func (t *Toaster) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	var key uint64
	registered := make(chan struct{})
	ok := t.loop.Dispatch(func() {
		defer close(registered)
		t.nextSub++
		key = t.nextSub
		t.subs[key] = fn
		t.notify(fn, t.Snapshot())
	})
	if !ok {
		return func() {}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			t.loop.Dispatch(func() {
				<-registered
				delete(t.subs, key)
			})
		})
	}
}

// Flush blocks until all work queued before the call has run.
// It must not be called from a subscriber or observer.
func (t *Toaster) Flush() {
	t.loop.Flush()
}

// Close stops the timers and the event loop. Pending work is discarded.
// Close is idempotent and must not be called from the event loop.
func (t *Toaster) Close() {
	t.closeOnce.Do(func() {
		t.sched.Stop()
		t.loop.Close()
		t.logger.Debug("toaster closed")
	})
}

// Done is closed when the toaster starts shutting down.
func (t *Toaster) Done() <-chan struct{} {
	return t.loop.Done()
}

// Dispatch runs fn on the toaster's event loop.
func (t *Toaster) Dispatch(fn func()) bool {
	return t.loop.Dispatch(fn)
}

// Now returns the time on the toaster's clock.
func (t *Toaster) Now() time.Time {
	return t.config.Clock.Now()
}

// Handle returns the boundary handle bound to this toaster.
func (t *Toaster) Handle() Handle {
	return Handle{t: t}
}

// Pending returns the number of armed dismissal timers.
func (t *Toaster) Pending() int {
	return t.sched.Pending()
}

func (t *Toaster) enqueue(id ID, opts Options) {
	r := Record{
		ID:        id,
		Visible:   true,
		Render:    opts.Render,
		CreatedAt: t.config.Clock.Now(),
	}
	t.store.insert(r)

	duration := opts.Duration
	if duration <= 0 {
		duration = t.config.Duration
	}
	t.sched.Arm(id, duration)

	t.logger.Debug("toast enqueued",
		"id", uint64(id),
		"duration", EffectiveDuration(duration))
	t.observer.Observe(Event{Kind: EventEnqueued, Record: r, At: r.CreatedAt})
	t.publish()
}

func (t *Toaster) dismiss(id ID, source DismissSource) {
	if !t.store.SetVisible(id, false) {
		return
	}
	r, _ := t.store.Get(id)

	t.logger.Debug("toast dismissed", "id", uint64(id), "source", source.String())
	t.observer.Observe(Event{Kind: EventDismissed, Record: r, Source: source, At: t.config.Clock.Now()})
	t.publish()
}

func (t *Toaster) remove(id ID) {
	r, ok := t.store.Get(id)
	if !ok {
		return
	}
	t.store.Remove(id)

	t.logger.Debug("toast removed", "id", uint64(id))
	t.observer.Observe(Event{Kind: EventRemoved, Record: r, At: t.config.Clock.Now()})
	t.publish()
}

// publish stores a new snapshot and hands it to every subscriber.
func (t *Toaster) publish() {
	t.version++
	snap := &Snapshot{
		Position: t.config.Position,
		Records:  t.store.Records(),
		Version:  t.version,
	}
	t.snapshot.Store(snap)

	for _, fn := range t.subs {
		t.notify(fn, *snap)
	}
}

// notify calls a subscriber, isolating the others from its panics.
func (t *Toaster) notify(fn func(Snapshot), s Snapshot) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("subscriber panic", "panic", r)
		}
	}()
	fn(s)
}

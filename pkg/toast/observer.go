package toast

import "time"

// EventKind identifies a lifecycle transition.
type EventKind uint8

const (
	EventEnqueued EventKind = iota
	EventDismissed
	EventRemoved
)

func (k EventKind) String() string {
	switch k {
	case EventEnqueued:
		return "enqueued"
	case EventDismissed:
		return "dismissed"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// DismissSource says what hid a toast.
type DismissSource uint8

const (
	// DismissTimer means the scheduler's timer expired.
	DismissTimer DismissSource = iota
	// DismissManual means Dismiss was called.
	DismissManual
)

func (s DismissSource) String() string {
	if s == DismissManual {
		return "manual"
	}
	return "timer"
}

// Event describes one lifecycle transition of a toast.
type Event struct {
	Kind   EventKind
	Record Record

	// Source is set for EventDismissed.
	Source DismissSource

	// At is the provider clock's time of the transition.
	At time.Time
}

// Observer is notified of lifecycle transitions.
// Observers run on the event loop and must not block.
type Observer interface {
	Observe(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

// Observe implements Observer.
func (f ObserverFunc) Observe(e Event) {
	f(e)
}

type observers []Observer

func (o observers) Observe(e Event) {
	for _, obs := range o {
		obs.Observe(e)
	}
}

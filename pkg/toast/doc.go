// Package toast implements the lifecycle of transient toast notifications.
//
// A Toaster is the provider. It owns an ordered store of toast records, a
// dismissal scheduler and a single event loop that serializes every
// mutation. Code that wants to show notifications receives a Handle, which
// exposes only Toast and Dismiss:
//
//	t := toast.New(toast.WithPosition(toast.TopRight), toast.WithDuration(5*time.Second))
//	defer t.Close()
//
//	h := t.Handle()
//	id := h.Toast(toast.Options{Render: func(r toast.Record) *vdom.VNode {
//	    return vdom.Div(vdom.Text("Saved"))
//	}})
//
// # Lifecycle
//
// A record is created visible. After max(duration, MinDuration) the
// scheduler dismisses it, which only flips Visible to false so that the
// presentation layer can play its exit transition. Once that transition
// has finished the presentation layer calls Toaster.Remove and the record
// is dropped. Dismissing twice, or removing an id that is already gone,
// is a no-op.
//
// # Ordering
//
// For top positions new records are prepended, for bottom positions they
// are appended, so the newest toast is always closest to the screen edge
// the container is anchored to.
//
// # Request-scoped handles
//
// NewContext stores a Handle in a context.Context and Use retrieves it.
// Use panics with a T001 configuration error when no provider is in scope;
// a zero Handle panics the same way on every call.
package toast

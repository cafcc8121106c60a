package toast_test

import (
	"sync"
	"testing"
	"time"

	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/toast/toasttest"
	"github.com/vango-dev/crispy/pkg/vdom"
)

func TestToasterEndToEnd(t *testing.T) {
	h := toasttest.NewHarness(t)

	rendered := false
	id := h.Toaster.Toast(toast.Options{Render: func(r toast.Record) *vdom.VNode {
		rendered = true
		return vdom.Text("hi")
	}})

	s := h.Snapshot()
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	r, _ := s.Get(id)
	if !r.Visible {
		t.Fatal("new toast should be visible")
	}
	if rendered {
		t.Error("render must only be called by the presentation layer")
	}
	if got := r.Content().TextContent(); got != "hi" {
		t.Errorf("Content = %q", got)
	}

	h.Advance(toast.DefaultDuration)
	h.WaitHidden(id)
	if h.Toaster.Snapshot().Len() != 1 {
		t.Fatal("dismissal must not remove the record")
	}

	h.Toaster.Remove(id)
	h.WaitGone(id)
	if h.Snapshot().Len() != 0 {
		t.Error("store should be empty after Remove")
	}
}

func TestToasterMinimumDurationAndManualDismiss(t *testing.T) {
	h := toasttest.NewHarness(t, toast.WithDuration(100*time.Millisecond))

	id := h.Show("short")

	h.Advance(50 * time.Millisecond)
	h.Toaster.Dismiss(id)
	h.WaitHidden(id)

	h.Advance(249 * time.Millisecond)
	if h.Toaster.Pending() != 1 {
		t.Fatal("timer must keep running after a manual dismiss")
	}

	h.Advance(time.Millisecond)
	h.WaitTimers(0)

	dismissed := h.Events(toast.EventDismissed)
	if len(dismissed) != 1 {
		t.Fatalf("observed %d dismissals, want exactly 1", len(dismissed))
	}
	if dismissed[0].Source != toast.DismissManual {
		t.Errorf("source = %s, want manual", dismissed[0].Source)
	}
}

func TestToasterAutoDismissNotBeforeFloor(t *testing.T) {
	h := toasttest.NewHarness(t, toast.WithDuration(100*time.Millisecond))

	id := h.Show("short")

	h.Advance(299 * time.Millisecond)
	time.Sleep(10 * time.Millisecond)
	if r, _ := h.Record(id); !r.Visible {
		t.Fatal("toast hidden before MinDuration")
	}

	h.Advance(time.Millisecond)
	h.WaitHidden(id)

	dismissed := h.Events(toast.EventDismissed)
	if len(dismissed) != 1 || dismissed[0].Source != toast.DismissTimer {
		t.Fatalf("dismissals = %+v, want one timer dismissal", dismissed)
	}
	if got := dismissed[0].At.Sub(dismissed[0].Record.CreatedAt); got < toast.MinDuration {
		t.Errorf("visible for %v, want at least %v", got, toast.MinDuration)
	}
}

func TestToasterPerToastDuration(t *testing.T) {
	h := toasttest.NewHarness(t, toast.WithDuration(time.Second))

	long := h.Toaster.Toast(toast.Options{Render: toasttest.Text("long"), Duration: 5 * time.Second})
	short := h.Show("short")

	h.Advance(time.Second)
	h.WaitHidden(short)
	if r, _ := h.Record(long); !r.Visible {
		t.Error("per-toast duration ignored")
	}

	h.Advance(4 * time.Second)
	h.WaitHidden(long)
}

func TestToasterOrdering(t *testing.T) {
	tests := []struct {
		position toast.Position
		newest   int
	}{
		{toast.TopLeft, 0},
		{toast.BottomRight, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.position), func(t *testing.T) {
			h := toasttest.NewHarness(t, toast.WithPosition(tt.position))
			h.Toaster.Toast(toast.Options{})
			b := h.Toaster.Toast(toast.Options{})

			s := h.Snapshot()
			if s.Position != tt.position {
				t.Errorf("Position = %q", s.Position)
			}
			if got := s.IDs()[tt.newest]; got != b {
				t.Errorf("newest toast at %d = %d, want %d (order %v)", tt.newest, got, b, s.IDs())
			}
		})
	}
}

func TestToasterConcurrentToasts(t *testing.T) {
	h := toasttest.NewHarness(t)

	var (
		mu  sync.Mutex
		ids = make(map[toast.ID]bool)
		wg  sync.WaitGroup
	)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				id := h.Toaster.Toast(toast.Options{})
				mu.Lock()
				if ids[id] {
					t.Errorf("duplicate id %d", id)
				}
				ids[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if n := h.Snapshot().Len(); n != 200 {
		t.Errorf("Len = %d, want 200", n)
	}
}

func TestToasterRemoveUnknownIsNoop(t *testing.T) {
	h := toasttest.NewHarness(t)
	id := h.Show("x")
	before := h.Snapshot()

	h.Toaster.Remove(id + 1000)
	h.Toaster.Dismiss(id + 1000)

	after := h.Snapshot()
	if after.Version != before.Version || after.Len() != 1 {
		t.Errorf("unknown id changed the store: %+v -> %+v", before, after)
	}
	if len(h.Events(toast.EventRemoved)) != 0 {
		t.Error("no removal should be observed")
	}
}

func TestToasterSubscribe(t *testing.T) {
	h := toasttest.NewHarness(t)

	var (
		mu       sync.Mutex
		versions []uint64
	)
	unsubscribe := h.Toaster.Subscribe(func(s toast.Snapshot) {
		mu.Lock()
		versions = append(versions, s.Version)
		mu.Unlock()
	})

	id := h.Show("a")
	h.Toaster.Dismiss(id)
	h.Toaster.Flush()

	unsubscribe()
	h.Toaster.Remove(id)
	h.Toaster.Flush()

	mu.Lock()
	defer mu.Unlock()
	want := []uint64{0, 1, 2}
	if len(versions) != len(want) {
		t.Fatalf("versions = %v, want %v", versions, want)
	}
	for i := range want {
		if versions[i] != want[i] {
			t.Errorf("versions[%d] = %d, want %d", i, versions[i], want[i])
		}
	}
}

func TestToasterSubscriberToastsWithFullQueue(t *testing.T) {
	h := toasttest.NewHarness(t, toast.WithQueueSize(1))

	// Loop-confined: the subscriber only runs on the event loop.
	fired := false
	h.Toaster.Subscribe(func(s toast.Snapshot) {
		if fired || s.Len() == 0 {
			return
		}
		fired = true
		for i := 0; i < 3; i++ {
			h.Toaster.Toast(toast.Options{Render: toasttest.Text("follow-up")})
		}
	})

	h.Toaster.Toast(toast.Options{Render: toasttest.Text("trigger")})

	flushed := make(chan struct{})
	go func() {
		h.Toaster.Flush()
		h.Toaster.Flush()
		close(flushed)
	}()
	select {
	case <-flushed:
	case <-time.After(toasttest.WaitTimeout):
		t.Fatal("provider deadlocked when a subscriber toasted into a full queue")
	}

	h.WaitFor("4 toasts", func(s toast.Snapshot) bool { return s.Len() == 4 })
}

func TestToasterSubscriberPanicIsolated(t *testing.T) {
	h := toasttest.NewHarness(t)

	h.Toaster.Subscribe(func(s toast.Snapshot) {
		if s.Len() > 0 {
			panic("bad subscriber")
		}
	})
	var got int
	h.Toaster.Subscribe(func(s toast.Snapshot) { got = s.Len() })

	h.Show("a")
	h.Toaster.Flush()
	if got != 1 {
		t.Errorf("second subscriber saw Len %d, want 1", got)
	}
}

func TestToasterClose(t *testing.T) {
	h := toasttest.NewHarness(t)
	h.Show("a")

	h.Toaster.Close()
	if h.Toaster.Pending() != 0 {
		t.Error("Close should cancel pending timers")
	}

	// Operations after Close are discarded without blocking.
	h.Toaster.Toast(toast.Options{})
	h.Toaster.Dismiss(1)
	h.Toaster.Flush()
	h.Toaster.Close()

	select {
	case <-h.Toaster.Done():
	default:
		t.Error("Done not closed")
	}
}

func TestToasterConfigDefaults(t *testing.T) {
	tr := toast.New(
		toast.WithPosition("nowhere"),
		toast.WithDuration(-time.Second),
		toast.WithLogger(toasttest.DiscardLogger()),
		toast.WithQueueSize(0),
	)
	defer tr.Close()

	c := tr.Config()
	if c.Position != toast.DefaultPosition {
		t.Errorf("Position = %q, want default", c.Position)
	}
	if c.Duration != 0 {
		t.Errorf("Duration = %v, want 0", c.Duration)
	}
	if c.QueueSize != toast.DefaultQueueSize {
		t.Errorf("QueueSize = %d", c.QueueSize)
	}
	if c.Clock == nil {
		t.Error("Clock not defaulted")
	}
}

func TestNestedProvidersAreIndependent(t *testing.T) {
	outer := toasttest.NewHarness(t)
	inner := toasttest.NewHarness(t, toast.WithPosition(toast.TopCenter))

	outer.Show("outer")
	innerID := inner.Show("inner")

	if outer.Snapshot().Len() != 1 || inner.Snapshot().Len() != 1 {
		t.Fatal("providers share state")
	}

	inner.Toaster.Dismiss(innerID)
	inner.WaitHidden(innerID)
	if r := outer.Snapshot().Records[0]; !r.Visible {
		t.Error("dismiss on inner provider affected outer")
	}
}

package toast

import (
	"bytes"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLoopRunsInOrder(t *testing.T) {
	l := NewLoop(4, nil)
	go l.Run()
	defer l.Close()

	var got []int
	for i := 0; i < 50; i++ {
		i := i
		l.Dispatch(func() { got = append(got, i) })
	}
	l.Flush()

	if len(got) != 50 {
		t.Fatalf("ran %d functions, want 50", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, out of order", i, v)
		}
	}
}

func TestLoopRecoversPanics(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	l := NewLoop(4, logger)
	go l.Run()
	defer l.Close()

	ran := false
	l.Dispatch(func() { panic("boom") })
	l.Dispatch(func() { ran = true })
	l.Flush()

	if !ran {
		t.Error("loop stopped after a panic")
	}
	if !strings.Contains(buf.String(), "dispatch panic") {
		t.Errorf("panic not logged: %s", buf.String())
	}
}

func TestLoopDispatchAfterClose(t *testing.T) {
	l := NewLoop(1, nil)
	go l.Run()
	l.Close()

	if l.Dispatch(func() {}) {
		t.Error("Dispatch after Close should return false")
	}
	// Flush on a closed loop must not block.
	l.Flush()
	// Close is idempotent.
	l.Close()
}

func TestLoopCloseWithoutRun(t *testing.T) {
	l := NewLoop(1, nil)
	l.Close()
	// Run after Close returns immediately.
	l.Run()
}

func TestLoopConcurrentDispatch(t *testing.T) {
	l := NewLoop(2, nil)
	go l.Run()
	defer l.Close()

	count := 0
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				l.Dispatch(func() { count++ })
			}
		}()
	}
	wg.Wait()
	l.Flush()

	if count != 800 {
		t.Errorf("count = %d, want 800", count)
	}
}

func TestLoopDispatchFromLoopWithFullQueue(t *testing.T) {
	l := NewLoop(1, nil)
	go l.Run()
	defer l.Close()

	var got []int
	l.Dispatch(func() {
		for i := 1; i <= 5; i++ {
			i := i
			if !l.Dispatch(func() { got = append(got, i) }) {
				t.Error("Dispatch from the loop was rejected")
			}
		}
		got = append(got, 0)
	})

	flushed := make(chan struct{})
	go func() {
		l.Flush()
		close(flushed)
	}()
	select {
	case <-flushed:
	case <-time.After(2 * time.Second):
		t.Fatal("loop deadlocked dispatching to itself")
	}

	want := []int{0, 1, 2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if n := l.Backlog(); n != 0 {
		t.Errorf("Backlog = %d after Flush", n)
	}
}

func TestLoopOverflowKeepsOrder(t *testing.T) {
	l := NewLoop(2, nil)

	// Fill the channel and spill before the loop starts.
	var got []int
	for i := 0; i < 10; i++ {
		i := i
		l.Dispatch(func() { got = append(got, i) })
	}
	if n := l.Backlog(); n != 10 {
		t.Fatalf("Backlog = %d, want 10", n)
	}

	go l.Run()
	defer l.Close()
	l.Flush()

	for i, v := range got {
		if v != i {
			t.Fatalf("got %v, out of order", got)
		}
	}
	if len(got) != 10 {
		t.Fatalf("ran %d functions, want 10", len(got))
	}
}

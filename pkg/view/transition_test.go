package view

import (
	"strings"
	"testing"

	"github.com/vango-dev/crispy/pkg/toast"
)

func TestForPairsEdgeWithSlide(t *testing.T) {
	tests := []struct {
		position  toast.Position
		enterFrom string
	}{
		{toast.TopLeft, "-translate-x-full"},
		{toast.BottomLeft, "-translate-x-full"},
		{toast.TopRight, "translate-x-full"},
		{toast.BottomRight, "translate-x-full"},
		{toast.TopCenter, "-translate-y-full"},
		{toast.BottomCenter, "translate-y-full"},
	}

	for _, tt := range tests {
		t.Run(string(tt.position), func(t *testing.T) {
			tr := For(tt.position)
			if want := "opacity-0 " + tt.enterFrom; tr.EnterFrom != want {
				t.Errorf("EnterFrom = %q, want %q", tr.EnterFrom, want)
			}
			if !strings.HasPrefix(tr.EnterTo, "opacity-100 ") {
				t.Errorf("EnterTo = %q, want fade first", tr.EnterTo)
			}
			if !strings.HasSuffix(tr.LeaveTo, tt.enterFrom) {
				t.Errorf("LeaveTo = %q, want exit towards %q", tr.LeaveTo, tt.enterFrom)
			}
			if tr.Enter != enterClass || tr.Leave != leaveClass {
				t.Errorf("Enter/Leave = %q/%q", tr.Enter, tr.Leave)
			}
		})
	}
}

func TestMerge(t *testing.T) {
	got := Merge(
		Transition{EnterFrom: "a"},
		Transition{EnterFrom: "b", LeaveTo: "c"},
		Transition{},
	)
	if got.EnterFrom != "a b" || got.LeaveTo != "c" || got.EnterTo != "" {
		t.Errorf("Merge = %+v", got)
	}
}

func TestClassFor(t *testing.T) {
	tr := For(toast.BottomRight)
	if got := tr.ClassFor(true); !strings.Contains(got, "duration-300") || !strings.Contains(got, "translate-x-0") {
		t.Errorf("visible class = %q", got)
	}
	if got := tr.ClassFor(false); !strings.Contains(got, "duration-150") || !strings.Contains(got, "opacity-0") {
		t.Errorf("leaving class = %q", got)
	}
}

func TestAnchorStyle(t *testing.T) {
	tests := map[toast.Position]string{
		toast.TopLeft:      "top:0;left:0",
		toast.TopRight:     "top:0;right:0",
		toast.TopCenter:    "top:0;right:0;left:0;margin:0 auto",
		toast.BottomLeft:   "bottom:0;left:0",
		toast.BottomRight:  "bottom:0;right:0",
		toast.BottomCenter: "bottom:0;right:0;left:0;margin:0 auto",
	}
	for p, want := range tests {
		if got := AnchorStyle(p); got != want {
			t.Errorf("AnchorStyle(%s) = %q, want %q", p, got, want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelSuccess, LevelError, LevelWarning, LevelInfo} {
		if got := ParseLevel(string(l)); got != l {
			t.Errorf("ParseLevel(%q) = %q", l, got)
		}
	}
	if got := ParseLevel("fatal"); got != LevelInfo {
		t.Errorf("ParseLevel(fatal) = %q, want info", got)
	}
}

package view

import (
	"strings"
	"time"

	"github.com/vango-dev/crispy/pkg/toast"
)

const (
	// EnterDuration matches the enter transition classes.
	EnterDuration = 300 * time.Millisecond

	// LeaveDuration matches the leave transition classes.
	LeaveDuration = 150 * time.Millisecond
)

const (
	enterClass = "transition-all duration-300"
	leaveClass = "transition-all duration-150"
)

// Transition holds the class strings for each phase of an animation.
type Transition struct {
	Enter     string
	EnterFrom string
	EnterTo   string
	Leave     string
	LeaveFrom string
	LeaveTo   string
}

var (
	fadeIn  = Transition{EnterFrom: "opacity-0", EnterTo: "opacity-100"}
	fadeOut = Transition{LeaveFrom: "opacity-100", LeaveTo: "opacity-0"}

	slides = map[toast.Edge]Transition{
		toast.EdgeLeft: {
			EnterFrom: "-translate-x-full", EnterTo: "translate-x-0",
			LeaveFrom: "translate-x-0", LeaveTo: "-translate-x-full",
		},
		toast.EdgeRight: {
			EnterFrom: "translate-x-full", EnterTo: "translate-x-0",
			LeaveFrom: "translate-x-0", LeaveTo: "translate-x-full",
		},
		toast.EdgeTop: {
			EnterFrom: "-translate-y-full", EnterTo: "translate-y-0",
			LeaveFrom: "translate-y-0", LeaveTo: "-translate-y-full",
		},
		toast.EdgeBottom: {
			EnterFrom: "translate-y-full", EnterTo: "translate-y-0",
			LeaveFrom: "translate-y-0", LeaveTo: "translate-y-full",
		},
	}
)

// Merge concatenates the classes of each phase, in order.
func Merge(transitions ...Transition) Transition {
	var out Transition
	for _, t := range transitions {
		out.Enter = joinClass(out.Enter, t.Enter)
		out.EnterFrom = joinClass(out.EnterFrom, t.EnterFrom)
		out.EnterTo = joinClass(out.EnterTo, t.EnterTo)
		out.Leave = joinClass(out.Leave, t.Leave)
		out.LeaveFrom = joinClass(out.LeaveFrom, t.LeaveFrom)
		out.LeaveTo = joinClass(out.LeaveTo, t.LeaveTo)
	}
	return out
}

func joinClass(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

// For returns the transition for toasts at position p: a fade combined
// with a slide from the edge the container is anchored to.
func For(p toast.Position) Transition {
	return Merge(
		Transition{Enter: enterClass, Leave: leaveClass},
		fadeIn,
		fadeOut,
		slides[p.Edge()],
	)
}

// ClassFor returns the classes an item has at rest in the given state.
func (t Transition) ClassFor(visible bool) string {
	if visible {
		return joinClass(t.Enter, t.EnterTo)
	}
	return joinClass(t.Leave, t.LeaveTo)
}

// AnchorStyle returns the inline style that pins the container for p.
func AnchorStyle(p toast.Position) string {
	var parts []string
	if p.IsTop() {
		parts = append(parts, "top:0")
	} else {
		parts = append(parts, "bottom:0")
	}
	switch p {
	case toast.TopLeft, toast.BottomLeft:
		parts = append(parts, "left:0")
	case toast.TopRight, toast.BottomRight:
		parts = append(parts, "right:0")
	default:
		parts = append(parts, "right:0", "left:0", "margin:0 auto")
	}
	return strings.Join(parts, ";")
}

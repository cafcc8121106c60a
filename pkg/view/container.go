package view

import (
	"strconv"

	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/vdom"
)

// ContainerID is the DOM id of the toast container.
const ContainerID = "crispy-toaster"

const (
	containerClass = "fixed z-[9999] flex w-full max-w-md flex-col gap-2 p-2"
	itemClass      = "w-full max-w-5xl"
)

// Item states, exposed as data-state.
const (
	StateEnter = "enter"
	StateLeave = "leave"
)

// Container renders the toast container for a snapshot.
func Container(s toast.Snapshot) *vdom.VNode {
	position := s.Position
	if !position.Valid() {
		position = toast.DefaultPosition
	}
	tr := For(position)

	return vdom.Div(
		vdom.ID(ContainerID),
		vdom.Class(containerClass),
		vdom.StyleAttr(AnchorStyle(position)),
		vdom.AriaLive("polite"),
		vdom.Data("position", string(position)),
		vdom.Data("version", strconv.FormatUint(s.Version, 10)),
		vdom.Range(s.Records, func(r toast.Record, _ int) *vdom.VNode {
			return Item(r, tr)
		}),
	)
}

// Item renders one toast wrapped in its transition element.
func Item(r toast.Record, tr Transition) *vdom.VNode {
	state := StateEnter
	if !r.Visible {
		state = StateLeave
	}
	return vdom.Div(
		vdom.Key(r.ID.String()),
		vdom.Role("alert"),
		vdom.Class(itemClass, tr.ClassFor(r.Visible)),
		vdom.Data("toast-id", r.ID.String()),
		vdom.Data("state", state),
		vdom.Data("enter-from", tr.EnterFrom),
		vdom.Data("enter-to", tr.EnterTo),
		vdom.Data("leave-from", tr.LeaveFrom),
		vdom.Data("leave-to", tr.LeaveTo),
		r.Content(),
	)
}

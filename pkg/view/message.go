package view

import (
	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/vdom"
)

// Level is the severity of a message toast.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelWarning Level = "warning"
	LevelInfo    Level = "info"
)

// ParseLevel maps a level name to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch Level(s) {
	case LevelSuccess, LevelError, LevelWarning:
		return Level(s)
	}
	return LevelInfo
}

var levelClass = map[Level]string{
	LevelSuccess: "border-green-500",
	LevelError:   "border-red-500",
	LevelWarning: "border-yellow-500",
	LevelInfo:    "border-blue-500",
}

// Message returns a render function for a card with an optional title.
// The close button is disabled while the toast is leaving.
func Message(level Level, title, body string) toast.RenderFunc {
	return func(r toast.Record) *vdom.VNode {
		return vdom.Div(
			vdom.Class("rounded border-l-4 bg-white p-3 shadow", levelClass[ParseLevel(string(level))]),
			vdom.Data("level", string(ParseLevel(string(level)))),
			vdom.If(title != "", vdom.Strong(vdom.Text(title))),
			vdom.P(vdom.Text(body)),
			vdom.Button(
				vdom.Type("button"),
				vdom.AriaLabel("Dismiss"),
				vdom.Data("dismiss", r.ID.String()),
				vdom.Disabled(!r.Visible),
				vdom.Text("×"),
			),
		)
	}
}

// Show displays a message toast.
//
//	view.Show(h, view.LevelWarning, "This action cannot be undone")
func Show(h toast.Handle, level Level, message string) toast.ID {
	return h.Toast(toast.Options{Render: Message(level, "", message)})
}

// Success shows a success toast.
func Success(h toast.Handle, message string) toast.ID {
	return Show(h, LevelSuccess, message)
}

// Error shows an error toast.
func Error(h toast.Handle, message string) toast.ID {
	return Show(h, LevelError, message)
}

// Warning shows a warning toast.
func Warning(h toast.Handle, message string) toast.ID {
	return Show(h, LevelWarning, message)
}

// Info shows an info toast.
func Info(h toast.Handle, message string) toast.ID {
	return Show(h, LevelInfo, message)
}

// WithTitle shows a toast with a title and message.
//
//	view.WithTitle(h, view.LevelSuccess, "Settings", "Your changes have been saved.")
func WithTitle(h toast.Handle, level Level, title, message string) toast.ID {
	return h.Toast(toast.Options{Render: Message(level, title, message)})
}

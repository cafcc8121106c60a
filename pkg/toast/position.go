package toast

import (
	"fmt"

	"github.com/vango-dev/crispy/internal/errors"
)

// Position selects where the toast container is anchored.
type Position string

const (
	TopLeft      Position = "top-left"
	TopRight     Position = "top-right"
	TopCenter    Position = "top-center"
	BottomLeft   Position = "bottom-left"
	BottomRight  Position = "bottom-right"
	BottomCenter Position = "bottom-center"
)

// DefaultPosition is used when no position is configured.
const DefaultPosition = BottomRight

// Positions returns all valid positions.
func Positions() []Position {
	return []Position{TopLeft, TopRight, TopCenter, BottomLeft, BottomRight, BottomCenter}
}

// ParsePosition parses a position name such as "top-left".
func ParsePosition(s string) (Position, error) {
	p := Position(s)
	if !p.Valid() {
		return "", errors.New(errors.CodeInvalidPosition).
			WithDetail(fmt.Sprintf("%q is not a toast position.", s)).
			WithSuggestion("Use one of top-left, top-right, top-center, bottom-left, bottom-right, bottom-center.")
	}
	return p, nil
}

// Valid reports whether p is one of the six positions.
func (p Position) Valid() bool {
	switch p {
	case TopLeft, TopRight, TopCenter, BottomLeft, BottomRight, BottomCenter:
		return true
	}
	return false
}

// IsTop reports whether the container is anchored to the top of the screen.
// New toasts are prepended for top positions and appended otherwise.
func (p Position) IsTop() bool {
	return p == TopLeft || p == TopRight || p == TopCenter
}

// Edge returns the screen edge toasts slide in from.
func (p Position) Edge() Edge {
	switch p {
	case TopLeft, BottomLeft:
		return EdgeLeft
	case TopRight, BottomRight:
		return EdgeRight
	case TopCenter:
		return EdgeTop
	case BottomCenter:
		return EdgeBottom
	}
	return DefaultPosition.Edge()
}

func (p Position) String() string {
	return string(p)
}

// Edge is a screen edge.
type Edge uint8

const (
	EdgeLeft Edge = iota
	EdgeRight
	EdgeTop
	EdgeBottom
)

func (e Edge) String() string {
	switch e {
	case EdgeLeft:
		return "left"
	case EdgeRight:
		return "right"
	case EdgeTop:
		return "top"
	case EdgeBottom:
		return "bottom"
	default:
		return "unknown"
	}
}

package toast

import (
	stderrors "errors"
	"testing"

	"github.com/vango-dev/crispy/internal/errors"
)

func TestParsePosition(t *testing.T) {
	for _, p := range Positions() {
		got, err := ParsePosition(string(p))
		if err != nil || got != p {
			t.Errorf("ParsePosition(%q) = %q, %v", p, got, err)
		}
	}

	_, err := ParsePosition("middle-left")
	if err == nil {
		t.Fatal("expected error for unknown position")
	}
	if !stderrors.Is(err, errors.New(errors.CodeInvalidPosition)) {
		t.Errorf("expected T002, got %v", err)
	}
}

func TestPositionEdge(t *testing.T) {
	tests := []struct {
		position Position
		top      bool
		edge     Edge
	}{
		{TopLeft, true, EdgeLeft},
		{TopRight, true, EdgeRight},
		{TopCenter, true, EdgeTop},
		{BottomLeft, false, EdgeLeft},
		{BottomRight, false, EdgeRight},
		{BottomCenter, false, EdgeBottom},
	}
	for _, tt := range tests {
		if got := tt.position.IsTop(); got != tt.top {
			t.Errorf("%s.IsTop() = %v, want %v", tt.position, got, tt.top)
		}
		if got := tt.position.Edge(); got != tt.edge {
			t.Errorf("%s.Edge() = %s, want %s", tt.position, got, tt.edge)
		}
	}
}

func TestIDRoundTrip(t *testing.T) {
	id, err := ParseID(ID(1234).String())
	if err != nil || id != 1234 {
		t.Errorf("ParseID = %d, %v", id, err)
	}
	if _, err := ParseID("abc"); err == nil {
		t.Error("expected error for non-numeric id")
	}
}

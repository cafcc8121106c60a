package errors

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNewFromRegistry(t *testing.T) {
	for _, code := range GetAllCodes() {
		e := New(code)
		tmpl, _ := GetTemplate(code)
		if e.Category != tmpl.Category || e.Message != tmpl.Message {
			t.Errorf("New(%s) = %+v, want template %+v", code, e, tmpl)
		}
		if !strings.HasPrefix(e.Error(), code+": ") {
			t.Errorf("Error() = %q, want prefix %q", e.Error(), code)
		}
	}
}

func TestNewUnknownCode(t *testing.T) {
	e := New("T999")
	if e.Message != "Unknown error" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(CodeOutsideProvider)
	err := New(CodeOutsideProvider).WithSuggestion("wire a Toaster")
	if !stderrors.Is(err, sentinel) {
		t.Error("expected errors.Is to match on code")
	}

	wrapped := fmt.Errorf("render: %w", err)
	if !stderrors.Is(wrapped, sentinel) {
		t.Error("expected errors.Is to see through fmt wrapping")
	}

	if stderrors.Is(New(CodeInvalidPosition), sentinel) {
		t.Error("different codes must not match")
	}
}

func TestWrapAndHasCode(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := New(CodeConfigRead).Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("expected wrapped cause to be reachable")
	}
	if !HasCode(err, CodeConfigRead) {
		t.Error("HasCode should match own code")
	}
	if HasCode(cause, CodeConfigRead) {
		t.Error("plain errors have no code")
	}
	if !strings.HasSuffix(err.Error(), "permission denied") {
		t.Errorf("Error() = %q", err.Error())
	}

	outer := New(CodeConfigParse).Wrap(err)
	if !HasCode(outer, CodeConfigRead) {
		t.Error("HasCode should follow the wrap chain")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeConfigRead) != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New(CodeInvalidPort)
	if got := FromError(fmt.Errorf("x: %w", orig), CodeConfigRead); got != orig {
		t.Error("FromError should return the existing *Error")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, CodeConfigRead)
	if got.Code != CodeConfigRead || got.Wrapped != plain {
		t.Errorf("FromError(plain) = %+v", got)
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeInvalidPosition).
		WithDetail(`"middle" is not a toast position`).
		WithSuggestion("use bottom-right")
	out := err.Format()

	for _, want := range []string{"ERROR T002: Invalid toast position", `"middle" is not a toast position`, "Hint: use bottom-right"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q:\n%s", want, out)
		}
	}
}

func TestFormatJSON(t *testing.T) {
	err := New(CodeBadFrame).Wrap(stderrors.New("unexpected EOF"))

	var decoded map[string]any
	if e := json.Unmarshal([]byte(err.FormatJSON()), &decoded); e != nil {
		t.Fatalf("FormatJSON produced invalid JSON: %v", e)
	}
	if decoded["code"] != CodeBadFrame {
		t.Errorf("code = %v", decoded["code"])
	}
	if decoded["category"] != string(CategoryProtocol) {
		t.Errorf("category = %v", decoded["category"])
	}
	if !strings.Contains(decoded["detail"].(string), "unexpected EOF") {
		t.Errorf("detail = %v", decoded["detail"])
	}
}

func TestFprintPlainError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, stderrors.New("disk full"))
	if !strings.Contains(buf.String(), "ERROR: disk full") {
		t.Errorf("Fprint = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("aaa bbb ccc ddd", 7)
	want := []string{"aaa bbb", "ccc ddd"}
	if len(lines) != len(want) {
		t.Fatalf("wrapText = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

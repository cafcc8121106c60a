package live

import (
	"encoding/json"
	"fmt"

	"github.com/vango-dev/crispy/internal/errors"
	"github.com/vango-dev/crispy/pkg/toast"
)

// Frame types.
const (
	FrameRender  = "render"
	FrameError   = "error"
	FrameDismiss = "dismiss"
	FrameLeave   = "leave"
)

// Frame is one websocket message. Server frames carry render or error
// fields; client frames carry an id.
type Frame struct {
	Type    string   `json:"type"`
	Version uint64   `json:"version,omitempty"`
	HTML    string   `json:"html,omitempty"`
	ID      toast.ID `json:"id,omitempty"`
	Code    string   `json:"code,omitempty"`
	Message string   `json:"message,omitempty"`
}

// DecodeFrame parses a client frame. Anything other than a dismiss or
// leave frame with a non-zero id is a T101 error.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return Frame{}, errors.New(errors.CodeBadFrame).Wrap(err)
	}
	switch f.Type {
	case FrameDismiss, FrameLeave:
	default:
		return f, errors.New(errors.CodeBadFrame).
			WithDetail(fmt.Sprintf("unknown frame type %q.", f.Type))
	}
	if f.ID == 0 {
		return f, errors.New(errors.CodeBadFrame).
			WithDetail(fmt.Sprintf("%s frame has no id.", f.Type))
	}
	return f, nil
}

func renderFrame(version uint64, html string) Frame {
	return Frame{Type: FrameRender, Version: version, HTML: html}
}

func errorFrame(err error) Frame {
	e := errors.FromError(err, errors.CodeBadFrame)
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return Frame{Type: FrameError, Code: e.Code, Message: msg}
}

package live

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vango-dev/crispy/internal/errors"
	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/vdom"
	"github.com/vango-dev/crispy/pkg/view"
)

// CreateRequest is the body of POST /api/toasts.
type CreateRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Level   string `json:"level,omitempty"`

	// Duration in milliseconds. Zero uses the toaster default.
	Duration int `json:"duration,omitempty"`
}

// CreateResponse is the body of a successful POST /api/toasts.
type CreateResponse struct {
	ID toast.ID `json:"id"`
}

// ListResponse is the body of GET /api/toasts.
type ListResponse struct {
	Position toast.Position `json:"position"`
	Version  uint64         `json:"version"`
	Toasts   []ToastState   `json:"toasts"`
}

// ToastState is one toast in a ListResponse.
type ToastState struct {
	ID      toast.ID `json:"id"`
	Visible bool     `json:"visible"`
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	snap := s.toaster.Snapshot()
	page := vdom.Html(
		vdom.Lang("en"),
		vdom.Head(
			vdom.Meta(vdom.Charset("utf-8")),
			vdom.Meta(vdom.Name("viewport"), vdom.Content("width=device-width, initial-scale=1")),
			vdom.Title(vdom.Text(s.config.Title)),
		),
		vdom.Body(
			vdom.Main(vdom.H1(vdom.Text(s.config.Title))),
			view.Container(snap),
			vdom.Script(vdom.Raw(clientScript)),
		),
	)

	html, err := s.renderer.RenderToString(page)
	if err != nil {
		s.logger.Error("page render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, "<!DOCTYPE html>\n", html)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	snap := s.toaster.Snapshot()
	resp := ListResponse{
		Position: snap.Position,
		Version:  snap.Version,
		Toasts:   make([]ToastState, 0, len(snap.Records)),
	}
	for _, rec := range snap.Records {
		resp.Toasts = append(resp.Toasts, ToastState{ID: rec.ID, Visible: rec.Visible})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeBadRequest).Wrap(err))
		return
	}
	if req.Duration < 0 {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidDuration).
			WithDetail(fmt.Sprintf("duration %d is negative.", req.Duration)))
		return
	}
	if int64(req.Duration) > toast.MaxDurationMS {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeInvalidDuration).
			WithDetail(fmt.Sprintf("duration %d exceeds %d.", req.Duration, toast.MaxDurationMS)))
		return
	}
	if req.Title == "" && req.Message == "" {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeBadRequest).
			WithDetail("title or message is required."))
		return
	}

	id := s.toaster.Toast(toast.Options{
		Render:   view.Message(view.ParseLevel(req.Level), req.Title, req.Message),
		Duration: time.Duration(req.Duration) * time.Millisecond,
	})
	s.logger.Debug("toast created", "id", uint64(id), "remote", r.RemoteAddr)
	writeJSON(w, http.StatusCreated, CreateResponse{ID: id})
}

func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	id, err := toast.ParseID(chi.URLParam(r, "id"))
	if err != nil || id == 0 {
		writeError(w, http.StatusBadRequest, errors.New(errors.CodeBadRequest).
			WithDetail(fmt.Sprintf("invalid toast id %q.", chi.URLParam(r, "id"))))
		return
	}
	s.toaster.Dismiss(id)
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err *errors.Error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	fmt.Fprint(w, err.FormatJSON())
}

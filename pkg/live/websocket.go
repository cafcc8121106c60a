package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vango-dev/crispy/pkg/toast"
	"github.com/vango-dev/crispy/pkg/view"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
)

// conn is one connected page.
//
// Snapshots arrive on the toaster's loop and must not block it, so the
// subscriber only stores the latest one and wakes the write loop. Render
// frames are full renders, which makes skipping intermediate snapshots
// safe.
type conn struct {
	server *Server
	ws     *websocket.Conn
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc

	writeMu sync.Mutex

	mu      sync.Mutex
	latest  *toast.Snapshot
	leaving map[toast.ID]bool

	wake      chan struct{}
	closeOnce sync.Once
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err, "remote", r.RemoteAddr)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &conn{
		server:  s,
		ws:      ws,
		logger:  s.logger.With("remote", r.RemoteAddr),
		ctx:     ctx,
		cancel:  cancel,
		leaving: make(map[toast.ID]bool),
		wake:    make(chan struct{}, 1),
	}
	s.track(c)
	c.logger.Info("client connected")

	unsubscribe := s.toaster.Subscribe(c.offer)
	go c.writeLoop()
	c.readLoop()

	unsubscribe()
	c.close()
	s.untrack(c)
	c.logger.Info("client disconnected")
}

// offer runs on the toaster's loop.
func (c *conn) offer(snap toast.Snapshot) {
	c.mu.Lock()
	c.latest = &snap
	c.mu.Unlock()

	select {
	case c.wake <- struct{}{}:
	default:
	}
}

func (c *conn) take() (toast.Snapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.latest == nil {
		return toast.Snapshot{}, false
	}
	snap := *c.latest
	c.latest = nil

	for id := range c.leaving {
		delete(c.leaving, id)
	}
	for _, r := range snap.Records {
		if !r.Visible {
			c.leaving[r.ID] = true
		}
	}
	return snap, true
}

// renderedLeaving reports whether id was last rendered as leaving.
func (c *conn) renderedLeaving(id toast.ID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.leaving[id]
}

func (c *conn) writeLoop() {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-c.wake:
			snap, ok := c.take()
			if !ok {
				continue
			}
			if err := c.sendSnapshot(snap); err != nil {
				c.logger.Debug("write failed", "error", err)
				c.close()
				return
			}
		case <-ping.C:
			c.writeMu.Lock()
			err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.writeMu.Unlock()
			if err != nil {
				c.close()
				return
			}
		}
	}
}

func (c *conn) sendSnapshot(snap toast.Snapshot) error {
	html, err := c.server.renderer.RenderToString(view.Container(snap))
	if err != nil {
		c.logger.Error("render failed", "error", err, "version", snap.Version)
		return nil
	}
	return c.send(renderFrame(snap.Version, html))
}

func (c *conn) send(f Frame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *conn) readLoop() {
	timeout := c.server.config.ReadTimeout
	c.ws.SetReadDeadline(time.Now().Add(timeout))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(timeout))
	})

	for {
		_, msg, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.logger.Error("read error", "error", err)
			}
			return
		}
		c.ws.SetReadDeadline(time.Now().Add(timeout))
		c.handleFrame(msg)
	}
}

func (c *conn) handleFrame(msg []byte) {
	f, err := DecodeFrame(msg)
	frameType := f.Type
	if frameType == "" {
		frameType = "unknown"
	}
	_, span := startFrameSpan(c.ctx, c.server.tracer, frameType, uint64(f.ID))
	defer func() { endSpan(span, err) }()

	if err != nil {
		c.logger.Warn("bad frame", "error", err)
		if sendErr := c.send(errorFrame(err)); sendErr != nil {
			c.logger.Debug("write failed", "error", sendErr)
		}
		return
	}

	switch f.Type {
	case FrameDismiss:
		c.server.toaster.Dismiss(f.ID)
	case FrameLeave:
		if !c.renderedLeaving(f.ID) {
			c.logger.Debug("leave for toast not rendered as leaving", "id", uint64(f.ID))
			return
		}
		c.server.toaster.Remove(f.ID)
	}
}

func (c *conn) close() {
	c.closeOnce.Do(func() {
		c.cancel()
		c.writeMu.Lock()
		c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.writeMu.Unlock()
		c.ws.Close()
	})
}

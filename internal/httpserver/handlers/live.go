package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MrSnakeDoc/javadocs/internal/domain"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/deps"
	"github.com/MrSnakeDoc/javadocs/internal/httpserver/mw"
	"github.com/MrSnakeDoc/javadocs/internal/logger"
	"github.com/MrSnakeDoc/javadocs/internal/metrics"
	"github.com/MrSnakeDoc/javadocs/internal/navigation"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10
	liveMaxMessage = 4096
)

// Client to server message types.
const (
	msgNavigate       = "navigate"
	msgToggleSidebar  = "toggle_sidebar"
	msgCloseSidebar   = "close_sidebar"
	msgToggleCategory = "toggle_category"
	msgScrollTo       = "scroll_to"
)

// Server to client message types.
const (
	msgState  = "state"
	msgScroll = "scroll"
	msgError  = "error"
)

type liveRequest struct {
	Type     string `json:"type"`
	Topic    string `json:"topic,omitempty"`
	Category string `json:"category,omitempty"`
	Section  string `json:"section,omitempty"`
}

type liveState struct {
	Type        string          `json:"type"`
	Slug        string          `json:"slug"`
	Category    string          `json:"category"`
	SidebarOpen bool            `json:"sidebar_open"`
	Expanded    map[string]bool `json:"expanded"`
}

type liveScroll struct {
	Type   string `json:"type"`
	Target string `json:"target"`
}

type liveError struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// liveConn serializes writes and session saves of one live connection. The
// view goroutine and the read loop both report changes through it.
type liveConn struct {
	conn  *websocket.Conn
	visit *visit
	deps  deps.Deps
	log   logger.Logger

	mu sync.Mutex
}

// Live upgrades to a WebSocket and runs a live navigation view for the
// visitor's session. Route changes arrive as navigate messages and are
// published on a per-connection route bus; the view applies them to the
// Navigation State until the connection closes.
func Live(d deps.Deps) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}
	log := d.Logger.Named("live")
	rec := d.Recorder()

	return func(w http.ResponseWriter, r *http.Request) {
		id := mw.SessionID(r.Context())

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug("websocket upgrade failed", logger.Error(err))
			return
		}
		defer func() { _ = conn.Close() }()

		rec.AddLiveViews(1)
		defer rec.AddLiveViews(-1)

		ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
		defer cancel()

		lc := &liveConn{
			conn:  conn,
			visit: openVisit(ctx, d, id),
			deps:  d,
			log:   log.With(logger.String("session_id", id)),
		}

		bus := navigation.NewRouteBus()
		defer bus.Close()

		view := navigation.NewView(lc.visit.nav, bus, func(snap navigation.Snapshot) {
			if snap.Topic != nil {
				d.Index.IncrementViews(snap.Slug)
				rec.IncTopicView(snap.CategoryName)
			} else {
				rec.IncTopicNotFound()
			}
			lc.changed(ctx)
		})
		release := view.Activate(ctx)
		defer release()

		go lc.pingLoop(ctx)

		lc.log.Debug("live view opened")
		lc.readLoop(ctx, bus, rec)
		lc.log.Debug("live view closed")
	}
}

func (lc *liveConn) readLoop(ctx context.Context, bus *navigation.RouteBus, rec metrics.Recorder) {
	lc.conn.SetReadLimit(liveMaxMessage)
	_ = lc.conn.SetReadDeadline(time.Now().Add(livePongWait))
	lc.conn.SetPongHandler(func(string) error {
		return lc.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	nav := lc.visit.nav
	for {
		_, data, err := lc.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				lc.log.Debug("live read failed", logger.Error(err))
			}
			return
		}

		var msg liveRequest
		if err := json.Unmarshal(data, &msg); err != nil {
			lc.send(liveError{Type: msgError, Error: "invalid message"})
			continue
		}

		switch msg.Type {
		case msgNavigate:
			// Reconnecting to the current topic only resyncs the client.
			if msg.Topic == nav.CurrentSlug() {
				lc.changed(ctx)
				continue
			}
			rec.IncNavigation(metrics.SourceLive)
			bus.Publish(navigation.TopicRoute(msg.Topic))

		case msgToggleSidebar:
			nav.ToggleSidebar()
			lc.changed(ctx)

		case msgCloseSidebar:
			nav.CloseSidebar()
			lc.changed(ctx)

		case msgToggleCategory:
			cat, ok := lc.visit.repo.CategoryByPrefix(domain.CategoryRoutePrefix(msg.Category))
			if !ok {
				lc.send(liveError{Type: msgError, Error: "unknown category"})
				continue
			}
			nav.ToggleCategory(cat.Name)
			lc.changed(ctx)

		case msgScrollTo:
			// Unknown section ids are ignored.
			if nav.ScrollToSection(msg.Section) {
				lc.flushScroll()
			}

		default:
			lc.send(liveError{Type: msgError, Error: "unknown message type"})
		}
	}
}

// changed stores the session, then sends pending scroll requests followed
// by the new state.
func (lc *liveConn) changed(ctx context.Context) {
	lc.mu.Lock()
	defer lc.mu.Unlock()

	lc.visit.save(ctx, lc.deps)
	lc.flushScrollLocked()

	snap := lc.visit.nav.Snapshot()
	lc.writeLocked(liveState{
		Type:        msgState,
		Slug:        snap.Slug,
		Category:    snap.CategoryName,
		SidebarOpen: snap.SidebarOpen,
		Expanded:    lc.visit.repo.Expansion(),
	})
}

func (lc *liveConn) flushScroll() {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.flushScrollLocked()
}

func (lc *liveConn) flushScrollLocked() {
	for _, req := range lc.visit.scroll.Drain() {
		target := req.Anchor
		if req.Top {
			target = "top"
		}
		lc.writeLocked(liveScroll{Type: msgScroll, Target: target})
	}
}

func (lc *liveConn) send(v any) {
	lc.mu.Lock()
	defer lc.mu.Unlock()
	lc.writeLocked(v)
}

func (lc *liveConn) writeLocked(v any) {
	_ = lc.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
	if err := lc.conn.WriteJSON(v); err != nil {
		lc.log.Debug("live write failed", logger.Error(err))
	}
}

func (lc *liveConn) pingLoop(ctx context.Context) {
	ticker := time.NewTicker(livePingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := lc.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(liveWriteWait)); err != nil {
				return
			}
		}
	}
}

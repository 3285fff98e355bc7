// internal/app/features/feed/feed.go
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/homeclass/portal/internal/app/feedsync"
	"github.com/homeclass/portal/internal/app/system/auth"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// The session cookie is the auth boundary; the socket is same-origin
	// with the API it rides on.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// clientCommand is what the browser sends upstream. Only tab
// activation flows over the socket; every other write is a REST call.
type clientCommand struct {
	Type string `json:"type"`
	Feed string `json:"feed,omitempty"`
}

// Serve handles GET /api/feed: upgrade, open a session, and stream
// snapshot/unread/escalation updates until either side hangs up.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session, err := feedsync.NewSession(ctx, h.Deps, user)
	if err != nil {
		h.Log.Error("failed to open feed session", zap.Error(err),
			zap.String("user_id", user.ID))
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session failed"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}
	session.Start(ctx)
	h.Sessions.Add(session)
	defer func() {
		h.Sessions.Remove(session)
		session.Close()
	}()

	h.Log.Info("feed connected",
		zap.String("user_id", user.ID),
		zap.String("role", user.Role))

	go h.readPump(ctx, cancel, conn, session)
	h.writePump(ctx, conn, session)

	h.Log.Info("feed disconnected", zap.String("user_id", user.ID))
}

// readPump consumes client commands and pongs until the connection
// drops, then cancels the session context.
func (h *Handler) readPump(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, session *feedsync.Session) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.Log.Debug("feed read error", zap.Error(err))
			}
			return
		}

		var cmd clientCommand
		if err := json.Unmarshal(data, &cmd); err != nil {
			continue
		}
		if cmd.Type == "activate_tab" && feedsync.ValidFeed(feedsync.FeedID(cmd.Feed)) {
			session.ActivateTab(ctx, feedsync.FeedID(cmd.Feed))
		}
	}
}

// writePump streams session updates and pings downstream.
func (h *Handler) writePump(ctx context.Context, conn *websocket.Conn, session *feedsync.Session) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return

		case update, ok := <-session.Updates():
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(update); err != nil {
				return
			}

		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// internal/app/features/state/state.go
package state

import (
	"net/http"
	"time"

	"github.com/homeclass/portal/internal/app/features/shared/respond"
	"github.com/homeclass/portal/internal/app/feedsync"
	"github.com/homeclass/portal/internal/app/system/authz"
	"go.uber.org/zap"
)

// Get handles GET /api/state: the caller's persisted UI state.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	st, err := h.Readmarks.Get(r.Context(), userID)
	if err != nil {
		h.Log.Error("failed to load user state", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load state")
		return
	}
	respond.JSON(w, http.StatusOK, st)
}

type tabRequest struct {
	Tab string `json:"tab" validate:"required"`
}

// SetTab handles POST /api/state/tab. Switching onto a feed advances
// its read watermark to now, which is what clears the unread dot.
func (h *Handler) SetTab(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req tabRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	feed := feedsync.FeedID(req.Tab)
	if !feedsync.ValidFeed(feed) {
		respond.Error(w, http.StatusBadRequest, "unknown tab")
		return
	}

	if err := h.Readmarks.SetActiveTab(r.Context(), userID, req.Tab); err != nil {
		h.Log.Error("failed to set active tab", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not switch tab")
		return
	}
	if feedsync.Watermarked(feed) {
		if err := h.Readmarks.SetLastRead(r.Context(), userID, req.Tab, time.Now().UTC()); err != nil {
			h.Log.Warn("failed to advance watermark", zap.Error(err),
				zap.String("feed", req.Tab))
		}
	}

	// Mirror the switch into any open feed sockets so their unread
	// flags clear without waiting for a reconnect.
	h.Sessions.ActivateTab(userID, feed)

	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type conversationRequest struct {
	ConversationID string `json:"conversation_id" validate:"omitempty,max=64"`
}

// SetConversation handles POST /api/state/conversation: remember the
// open thread (empty id = closed). An open thread also advances the
// inbox watermark so its own messages never count as unread.
func (h *Handler) SetConversation(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req conversationRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Readmarks.SetActiveConversation(r.Context(), userID, req.ConversationID); err != nil {
		h.Log.Error("failed to set active conversation", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update state")
		return
	}
	if req.ConversationID != "" {
		if err := h.Readmarks.SetLastRead(r.Context(), userID, string(feedsync.FeedInbox), time.Now().UTC()); err != nil {
			h.Log.Warn("failed to advance inbox watermark", zap.Error(err))
		}
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

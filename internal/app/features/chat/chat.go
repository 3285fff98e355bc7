// internal/app/features/chat/chat.go
package chat

import (
	"net/http"

	"github.com/homeclass/portal/internal/app/features/shared/respond"
	"github.com/homeclass/portal/internal/app/notify"
	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/app/system/authz"
	"github.com/homeclass/portal/internal/app/system/htmlsanitize"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// List handles GET /api/chat: the school room, oldest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	msgs, err := h.Messages.ListBySchool(r.Context(), schoolID)
	if err != nil {
		h.Log.Error("failed to list chat", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load chat")
		return
	}
	respond.JSON(w, http.StatusOK, msgs)
}

type postRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// Post handles POST /api/chat.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	su, _ := auth.CurrentUser(r)
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	var req postRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.Messages.Create(r.Context(), models.ChatMessage{
		SchoolID:   schoolID,
		SenderID:   userID,
		SenderName: su.Name,
		SenderRole: su.Role,
		Text:       htmlsanitize.PlainText(req.Text),
	})
	if err != nil {
		h.Log.Error("failed to post chat message", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not send message")
		return
	}

	h.Dispatcher.Dispatch(notify.ChatPosted{
		Message: msg,
		Actor:   models.User{ID: userID, FullName: su.Name, Role: su.Role},
	})
	respond.JSON(w, http.StatusCreated, msg)
}

// Delete handles DELETE /api/chat/{id} (staff moderation). The delete
// is scoped to the caller's school, so a foreign id is a 404.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStaff(r) {
		respond.Error(w, http.StatusForbidden, "staff only")
		return
	}
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid message id")
		return
	}
	if err := h.Messages.Delete(r.Context(), schoolID, id); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, http.StatusNotFound, "message not found")
			return
		}
		h.Log.Error("failed to delete chat message", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete message")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

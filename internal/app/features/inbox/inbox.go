// internal/app/features/inbox/inbox.go
package inbox

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

// List handles GET /api/inbox: the caller's threads, most recently
// active first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	convs, err := h.Conversations.ListForUser(r.Context(), userID)
	if err != nil {
		h.Log.Error("failed to list conversations", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load inbox")
		return
	}
	respond.JSON(w, http.StatusOK, convs)
}

type openRequest struct {
	ParticipantID string `json:"participant_id" validate:"required,len=24,hexadecimal"`
}

// Open handles POST /api/inbox: resolve (or create) the thread with
// another member of the same school. Opening from either side lands on
// the same document.
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
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

	var req openRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	otherID, err := primitive.ObjectIDFromHex(req.ParticipantID)
	if err != nil || otherID == userID {
		respond.Error(w, http.StatusBadRequest, "invalid participant")
		return
	}

	other, err := h.Users.GetByID(r.Context(), otherID)
	if err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("failed to load participant", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not open conversation")
		return
	}
	if other == nil || other.SchoolID == nil || *other.SchoolID != schoolID {
		respond.Error(w, http.StatusNotFound, "no such member in your school")
		return
	}

	conv, err := h.Conversations.Ensure(r.Context(), models.Conversation{
		SchoolID:     schoolID,
		Participants: []primitive.ObjectID{userID, otherID},
		ParticipantNames: map[string]string{
			userID.Hex():  su.Name,
			otherID.Hex(): other.FullName,
		},
		ParticipantAvatars: map[string]string{
			otherID.Hex(): other.AvatarURL,
		},
	})
	if err != nil {
		h.Log.Error("failed to ensure conversation", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not open conversation")
		return
	}
	respond.JSON(w, http.StatusOK, conv)
}

// MessagesList handles GET /api/inbox/{conversationID}/messages.
func (h *Handler) MessagesList(w http.ResponseWriter, r *http.Request) {
	conv, _, ok := h.loadThread(w, r)
	if !ok {
		return
	}
	msgs, err := h.Messages.ListByConversation(r.Context(), conv.ID)
	if err != nil {
		h.Log.Error("failed to list messages", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load messages")
		return
	}
	respond.JSON(w, http.StatusOK, msgs)
}

type sendRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// Send handles POST /api/inbox/{conversationID}/messages. The message
// insert and the thread summary update are two writes; if the second
// fails the message still exists and the summary catches up on the
// next send.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	conv, userID, ok := h.loadThread(w, r)
	if !ok {
		return
	}
	su, _ := auth.CurrentUser(r)

	var req sendRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	msg, err := h.Messages.Create(r.Context(), models.DirectMessage{
		ConversationID: conv.ID,
		SenderID:       userID,
		Text:           htmlsanitize.PlainText(req.Text),
	})
	if err != nil {
		h.Log.Error("failed to send message", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not send message")
		return
	}

	if err := h.Conversations.SetLastMessage(r.Context(), conv.ID, userID, msg.Text, msg.Timestamp); err != nil {
		h.Log.Warn("failed to update thread summary", zap.Error(err),
			zap.String("conversation_id", conv.ID))
	}

	h.Dispatcher.Dispatch(notify.MessageSent{
		Conversation: *conv,
		Message:      msg,
		Actor:        models.User{ID: userID, FullName: su.Name, Role: su.Role},
	})
	respond.JSON(w, http.StatusCreated, msg)
}

// loadThread parses {conversationID}, loads the thread, and verifies
// the caller participates in it. Writes the error response itself when
// ok=false.
func (h *Handler) loadThread(w http.ResponseWriter, r *http.Request) (*models.Conversation, primitive.ObjectID, bool) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return nil, primitive.NilObjectID, false
	}
	conv, err := h.Conversations.GetByID(r.Context(), chi.URLParam(r, "conversationID"))
	if err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("failed to load conversation", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load conversation")
		return nil, primitive.NilObjectID, false
	}
	if conv == nil {
		respond.Error(w, http.StatusNotFound, "conversation not found")
		return nil, primitive.NilObjectID, false
	}
	if _, member := conv.OtherParticipant(userID); !member {
		respond.Error(w, http.StatusForbidden, "not your conversation")
		return nil, primitive.NilObjectID, false
	}
	return conv, userID, true
}

// internal/app/features/announcements/announcements.go
package announcements

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

// List handles GET /api/announcements, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID, _ := authz.SchoolCtx(r)
	items, err := h.Announcements.ListBySchool(r.Context(), schoolID)
	if err != nil {
		h.Log.Error("failed to list announcements", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load announcements")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

type createRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Body     string `json:"body,omitempty" validate:"omitempty,max=8000"`
	Priority string `json:"priority,omitempty" validate:"omitempty,oneof=normal high urgent"`
}

// Create handles POST /api/announcements.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	schoolID, _ := authz.SchoolCtx(r)
	su, _ := auth.CurrentUser(r)
	_, _, userID, _ := authz.UserCtx(r)

	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Announcements.Create(r.Context(), models.Announcement{
		SchoolID:   schoolID,
		Title:      req.Title,
		Body:       htmlsanitize.Sanitize(req.Body),
		Priority:   req.Priority,
		AuthorID:   userID,
		AuthorName: su.Name,
	})
	if err != nil {
		h.Log.Error("failed to create announcement", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not post announcement")
		return
	}

	h.Dispatcher.Dispatch(notify.AnnouncementPosted{
		Announcement: created,
		Actor:        models.User{ID: userID, FullName: su.Name, Role: su.Role},
	})
	respond.JSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/announcements/{id}. The delete is scoped
// to the caller's school, so a foreign id is a 404.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid announcement id")
		return
	}
	if err := h.Announcements.Delete(r.Context(), schoolID, id); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, http.StatusNotFound, "announcement not found")
			return
		}
		h.Log.Error("failed to delete announcement", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete announcement")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

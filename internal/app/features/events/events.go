// internal/app/features/events/events.go
package events

import (
	"net/http"
	"time"

	"github.com/homeclass/portal/internal/app/features/shared/respond"
	"github.com/homeclass/portal/internal/app/system/authz"
	"github.com/homeclass/portal/internal/app/system/htmlsanitize"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// List handles GET /api/events, soonest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	items, err := h.Events.ListBySchool(r.Context(), schoolID)
	if err != nil {
		h.Log.Error("failed to list events", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load events")
		return
	}
	respond.JSON(w, http.StatusOK, items)
}

type createRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=4000"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
}

// Create handles POST /api/events (staff only). The date is stored as
// its ISO string so the index order is already chronological.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStaff(r) {
		respond.Error(w, http.StatusForbidden, "staff only")
		return
	}
	schoolID, _ := authz.SchoolCtx(r)
	_, _, userID, _ := authz.UserCtx(r)

	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, err := time.Parse(models.EventDateLayout, req.Date); err != nil {
		respond.Error(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	created, err := h.Events.Create(r.Context(), models.CalendarEvent{
		SchoolID:    schoolID,
		Title:       req.Title,
		Description: htmlsanitize.PlainText(req.Description),
		Date:        req.Date,
		CreatedBy:   userID,
	})
	if err != nil {
		h.Log.Error("failed to create event", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create event")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// Delete handles DELETE /api/events/{id} (staff only). The delete is
// scoped to the caller's school, so a foreign id is a 404.
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
		respond.Error(w, http.StatusBadRequest, "invalid event id")
		return
	}
	if err := h.Events.Delete(r.Context(), schoolID, id); err != nil {
		if err == mongo.ErrNoDocuments {
			respond.Error(w, http.StatusNotFound, "event not found")
			return
		}
		h.Log.Error("failed to delete event", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete event")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

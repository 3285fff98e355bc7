// internal/app/features/assignments/assignments.go
package assignments

import (
	"net/http"
	"time"

	"github.com/homeclass/portal/internal/app/features/shared/respond"
	"github.com/homeclass/portal/internal/app/notify"
	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/app/system/authz"
	"github.com/homeclass/portal/internal/app/system/htmlsanitize"
	"github.com/homeclass/portal/internal/app/system/normalize"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// List handles GET /api/homework. Staff see every posting; students
// and guardians see the list with their own elapsed completions hidden
// for the decay window.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	role, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	all, err := h.Assignments.ListBySchool(r.Context(), schoolID)
	if err != nil {
		h.Log.Error("failed to list assignments", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load homework")
		return
	}

	viewer := models.User{ID: userID, Role: role}
	now := time.Now().UTC()
	out := make([]models.Assignment, 0, len(all))
	for i := range all {
		if all[i].VisibleTo(&viewer, now) {
			out = append(out, all[i])
		}
	}
	respond.JSON(w, http.StatusOK, out)
}

type createRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty" validate:"omitempty,max=8000"`
	Subject     string `json:"subject,omitempty" validate:"omitempty,max=80"`
	Grade       string `json:"grade" validate:"required,max=20"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=grade school"`
	DueDate     string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// Create handles POST /api/homework (staff only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStaff(r) {
		respond.Error(w, http.StatusForbidden, "staff only")
		return
	}
	schoolID, _ := authz.SchoolCtx(r)
	su, _ := auth.CurrentUser(r)
	_, _, userID, _ := authz.UserCtx(r)

	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	a := models.Assignment{
		SchoolID:    schoolID,
		Grade:       normalize.Grade(req.Grade),
		Title:       req.Title,
		Description: htmlsanitize.Sanitize(req.Description),
		Subject:     req.Subject,
		Visibility:  req.Visibility,
		TeacherID:   userID,
		TeacherName: su.Name,
	}
	if req.DueDate != "" {
		if due, err := time.Parse("2006-01-02", req.DueDate); err == nil {
			a.DueDate = due
		}
	}

	created, err := h.Assignments.Create(r.Context(), a)
	if err != nil {
		h.Log.Error("failed to create assignment", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not post homework")
		return
	}

	h.Dispatcher.Dispatch(notify.AssignmentCreated{
		Assignment: created,
		Actor:      models.User{ID: userID, FullName: su.Name, Role: su.Role},
	})
	respond.JSON(w, http.StatusCreated, created)
}

// Complete handles POST /api/homework/{id}/complete. The completion is
// per user; the posting disappears from that user's list for the decay
// window and stays visible to everyone else.
func (h *Handler) Complete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.loadOwn(w, r)
	if !ok {
		return
	}
	_, _, userID, _ := authz.UserCtx(r)

	now := time.Now().UTC()
	err := h.Assignments.SetCompletion(r.Context(), id, userID.Hex(), models.Completion{
		Done:      true,
		DoneAt:    now,
		HideUntil: now.Add(models.CompletionWindow),
	})
	if err != nil {
		h.Log.Error("failed to mark completion", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not mark as done")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{
		"ok":         true,
		"hide_until": now.Add(models.CompletionWindow),
	})
}

// Uncomplete handles POST /api/homework/{id}/uncomplete: undo before
// the hide window lapses.
func (h *Handler) Uncomplete(w http.ResponseWriter, r *http.Request) {
	id, _, ok := h.loadOwn(w, r)
	if !ok {
		return
	}
	_, _, userID, _ := authz.UserCtx(r)

	if err := h.Assignments.ClearHideWindow(r.Context(), id, userID.Hex()); err != nil {
		h.Log.Error("failed to clear completion", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not undo")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete handles DELETE /api/homework/{id} (staff only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStaff(r) {
		respond.Error(w, http.StatusForbidden, "staff only")
		return
	}
	id, _, ok := h.loadOwn(w, r)
	if !ok {
		return
	}
	if err := h.Assignments.Delete(r.Context(), id); err != nil {
		h.Log.Error("failed to delete assignment", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete homework")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// loadOwn parses {id}, loads the assignment, and enforces the tenant
// boundary. Writes the error response itself when ok=false.
func (h *Handler) loadOwn(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, *models.Assignment, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid assignment id")
		return primitive.NilObjectID, nil, false
	}
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return primitive.NilObjectID, nil, false
	}
	a, err := h.Assignments.GetByID(r.Context(), id)
	if err == mongo.ErrNoDocuments {
		respond.Error(w, http.StatusNotFound, "homework not found")
		return primitive.NilObjectID, nil, false
	}
	if err != nil {
		h.Log.Error("failed to load assignment", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load homework")
		return primitive.NilObjectID, nil, false
	}
	if a.SchoolID != schoolID {
		respond.Error(w, http.StatusNotFound, "homework not found")
		return primitive.NilObjectID, nil, false
	}
	return id, a, true
}

// internal/app/features/alerts/alerts.go
package alerts

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

// List handles GET /api/alerts. Staff see every active alert in the
// school; guardians see only their dependents' alerts.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	alerts, err := h.Alerts.ListActiveBySchool(r.Context(), schoolID)
	if err != nil {
		h.Log.Error("failed to list alerts", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load alerts")
		return
	}

	if !authz.IsStaff(r) {
		kids, err := h.Users.Dependents(r.Context(), userID)
		if err != nil {
			h.Log.Error("failed to load dependents", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not load alerts")
			return
		}
		mine := make(map[primitive.ObjectID]bool, len(kids))
		for _, k := range kids {
			mine[k.ID] = true
		}
		filtered := alerts[:0]
		for _, a := range alerts {
			if mine[a.StudentID] {
				filtered = append(filtered, a)
			}
		}
		alerts = filtered
	}
	respond.JSON(w, http.StatusOK, alerts)
}

type logRequest struct {
	StudentID string `json:"student_id" validate:"required,len=24,hexadecimal"`
	Type      string `json:"type" validate:"required,oneof=absent sick late"`
	Note      string `json:"note,omitempty" validate:"omitempty,max=1000"`
}

// LogAlert handles POST /api/alerts (staff only): record an absence or
// health alert for a student and notify the guardian.
func (h *Handler) LogAlert(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStaff(r) {
		respond.Error(w, http.StatusForbidden, "staff only")
		return
	}
	schoolID, _ := authz.SchoolCtx(r)
	su, _ := auth.CurrentUser(r)
	_, _, userID, _ := authz.UserCtx(r)

	var req logRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	studentID, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid student id")
		return
	}
	student, err := h.Users.GetByID(r.Context(), studentID)
	if err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("failed to load student", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not log alert")
		return
	}
	if student == nil || student.SchoolID == nil || *student.SchoolID != schoolID ||
		student.Role != models.RoleStudent {
		respond.Error(w, http.StatusNotFound, "no such student in your school")
		return
	}

	created, err := h.Alerts.Create(r.Context(), models.Alert{
		SchoolID:    schoolID,
		StudentID:   studentID,
		StudentName: student.FullName,
		TeacherID:   userID,
		TeacherName: su.Name,
		Type:        req.Type,
		Note:        htmlsanitize.PlainText(req.Note),
	})
	if err != nil {
		h.Log.Error("failed to create alert", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not log alert")
		return
	}

	h.Dispatcher.Dispatch(notify.AlertLogged{
		Alert: created,
		Actor: models.User{ID: userID, FullName: su.Name, Role: su.Role},
	})
	respond.JSON(w, http.StatusCreated, created)
}

type commentRequest struct {
	Text string `json:"text" validate:"required,max=1000"`
}

// Comment handles POST /api/alerts/{id}/comments: a threaded reply by
// staff or the student's guardian.
func (h *Handler) Comment(w http.ResponseWriter, r *http.Request) {
	alert, userID, ok := h.loadVisible(w, r)
	if !ok {
		return
	}
	su, _ := auth.CurrentUser(r)

	var req commentRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	comment := models.AlertComment{
		AuthorID:   userID,
		AuthorName: su.Name,
		Text:       htmlsanitize.PlainText(req.Text),
	}
	if err := h.Alerts.AddComment(r.Context(), alert.ID, comment); err != nil {
		h.Log.Error("failed to add alert comment", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not add reply")
		return
	}

	h.Dispatcher.Dispatch(notify.AlertCommented{
		Alert:   *alert,
		Comment: comment,
		Actor:   models.User{ID: userID, FullName: su.Name, Role: su.Role},
	})
	respond.JSON(w, http.StatusCreated, map[string]bool{"ok": true})
}

// Resolve handles POST /api/alerts/{id}/resolve (staff only). The
// record is removed outright; resolved alerts leave no trace in the
// active feed or anywhere else.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	if !authz.IsStaff(r) {
		respond.Error(w, http.StatusForbidden, "staff only")
		return
	}
	alert, _, ok := h.loadVisible(w, r)
	if !ok {
		return
	}
	if err := h.Alerts.Resolve(r.Context(), alert.ID); err != nil {
		h.Log.Error("failed to resolve alert", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not resolve alert")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// loadVisible parses {id}, loads the alert, and verifies the caller may
// see it: staff in the same school, or the student's guardian.
func (h *Handler) loadVisible(w http.ResponseWriter, r *http.Request) (*models.Alert, primitive.ObjectID, bool) {
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return nil, primitive.NilObjectID, false
	}
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return nil, primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid alert id")
		return nil, primitive.NilObjectID, false
	}
	alert, err := h.Alerts.GetByID(r.Context(), id)
	if err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("failed to load alert", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load alert")
		return nil, primitive.NilObjectID, false
	}
	if alert == nil || alert.SchoolID != schoolID {
		respond.Error(w, http.StatusNotFound, "alert not found")
		return nil, primitive.NilObjectID, false
	}

	if !authz.IsStaff(r) {
		student, err := h.Users.GetByID(r.Context(), alert.StudentID)
		if err != nil && err != mongo.ErrNoDocuments {
			h.Log.Error("failed to load student", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "could not load alert")
			return nil, primitive.NilObjectID, false
		}
		if student == nil || student.ParentID == nil || *student.ParentID != userID {
			respond.Error(w, http.StatusForbidden, "not your dependent's alert")
			return nil, primitive.NilObjectID, false
		}
	}
	return alert, userID, true
}

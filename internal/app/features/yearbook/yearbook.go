// internal/app/features/yearbook/yearbook.go
package yearbook

import (
	"net/http"

	"github.com/homeclass/portal/internal/app/features/shared/respond"
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

// List handles GET /api/journal?grade=. Staff may browse any grade;
// students and guardians are pinned to their own.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}
	su, _ := auth.CurrentUser(r)

	grade := normalize.Grade(r.URL.Query().Get("grade"))
	if !authz.IsStaff(r) && su.Grade != "" {
		grade = su.Grade
	}

	entries, err := h.Entries.ListBySchool(r.Context(), schoolID, grade)
	if err != nil {
		h.Log.Error("failed to list journal entries", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load journal")
		return
	}
	respond.JSON(w, http.StatusOK, entries)
}

type createRequest struct {
	Grade   string   `json:"grade" validate:"required,max=20"`
	Caption string   `json:"caption,omitempty" validate:"omitempty,max=2000"`
	Images  []string `json:"images,omitempty" validate:"omitempty,max=10,dive,url"`
}

// Create handles POST /api/journal.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req createRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Caption == "" && len(req.Images) == 0 {
		respond.Error(w, http.StatusBadRequest, "an entry needs a caption or at least one image")
		return
	}

	created, err := h.Entries.Create(r.Context(), models.YearbookEntry{
		SchoolID:   schoolID,
		Grade:      normalize.Grade(req.Grade),
		Caption:    htmlsanitize.PlainText(req.Caption),
		Images:     req.Images,
		AuthorID:   userID,
		AuthorName: su.Name,
	})
	if err != nil {
		h.Log.Error("failed to create journal entry", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not post entry")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// Like handles POST /api/journal/{id}/like: toggle the caller's like.
// Repeating the call flips the state back; double-likes collapse into
// set membership.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	entry, userID, ok := h.loadOwn(w, r)
	if !ok {
		return
	}
	liked, err := h.Entries.ToggleLike(r.Context(), entry.ID, userID.Hex())
	if err != nil {
		h.Log.Error("failed to toggle like", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update like")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"liked": liked})
}

// Delete handles DELETE /api/journal/{id}: the author or staff.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	entry, userID, ok := h.loadOwn(w, r)
	if !ok {
		return
	}
	if entry.AuthorID != userID && !authz.IsStaff(r) {
		respond.Error(w, http.StatusForbidden, "only the author or staff can delete an entry")
		return
	}
	if err := h.Entries.Delete(r.Context(), entry.ID); err != nil {
		h.Log.Error("failed to delete journal entry", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete entry")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// loadOwn parses {id}, loads the entry, and enforces the tenant
// boundary.
func (h *Handler) loadOwn(w http.ResponseWriter, r *http.Request) (*models.YearbookEntry, primitive.ObjectID, bool) {
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
		respond.Error(w, http.StatusBadRequest, "invalid entry id")
		return nil, primitive.NilObjectID, false
	}
	entry, err := h.Entries.GetByID(r.Context(), id)
	if err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("failed to load journal entry", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load entry")
		return nil, primitive.NilObjectID, false
	}
	if entry == nil || entry.SchoolID != schoolID {
		respond.Error(w, http.StatusNotFound, "entry not found")
		return nil, primitive.NilObjectID, false
	}
	return entry, userID, true
}

// internal/app/features/schools/schools.go
package schools

import (
	"errors"
	"net/http"

	"github.com/homeclass/portal/internal/app/features/shared/respond"
	schoolstore "github.com/homeclass/portal/internal/app/store/schools"
	"github.com/homeclass/portal/internal/app/system/authz"
	"github.com/homeclass/portal/internal/app/system/normalize"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// List handles GET /api/schools. Public: the signup form needs the
// registry before any session exists.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schools, err := h.Schools.List(r.Context())
	if err != nil {
		h.Log.Error("failed to list schools", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load schools")
		return
	}
	respond.JSON(w, http.StatusOK, schools)
}

type schoolRequest struct {
	Name    string `json:"name" validate:"required,max=160"`
	Level   string `json:"level,omitempty" validate:"omitempty,max=40"`
	LogoURL string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// Create handles POST /api/schools (superadmin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if !authz.IsSuperAdmin(r) {
		respond.Error(w, http.StatusForbidden, "superadmin only")
		return
	}

	var req schoolRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Schools.Create(r.Context(), models.School{
		Name:    normalize.Name(req.Name),
		Level:   req.Level,
		LogoURL: req.LogoURL,
	})
	if err != nil {
		if errors.Is(err, schoolstore.ErrDuplicateName) {
			respond.Error(w, http.StatusConflict, "a school with this name already exists")
			return
		}
		h.Log.Error("failed to create school", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not create school")
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/schools/{id} (superadmin only).
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	if !authz.IsSuperAdmin(r) {
		respond.Error(w, http.StatusForbidden, "superadmin only")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid school id")
		return
	}

	var req schoolRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Schools.Update(r.Context(), id, normalize.Name(req.Name), req.Level, req.LogoURL); err != nil {
		h.Log.Error("failed to update school", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not update school")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Delete handles DELETE /api/schools/{id} (superadmin only).
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authz.IsSuperAdmin(r) {
		respond.Error(w, http.StatusForbidden, "superadmin only")
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid school id")
		return
	}

	if err := h.Schools.Delete(r.Context(), id); err != nil {
		h.Log.Error("failed to delete school", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not delete school")
		return
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

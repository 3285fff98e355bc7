// internal/app/features/directory/directory.go
package directory

import (
	"net/http"
	"strings"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/homeclass/portal/internal/app/features/shared/respond"
	"github.com/homeclass/portal/internal/app/system/authz"
	"github.com/homeclass/portal/internal/domain/models"
	"go.uber.org/zap"
)

// memberRow is the directory's public view of a user: no email leaks
// to students, no password material ever.
type memberRow struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Grade     string `json:"grade,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Email     string `json:"email,omitempty"`
}

// List handles GET /api/directory?q=&role=. Members see everyone in
// their own school; staff additionally see email addresses.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	schoolID, ok := authz.SchoolCtx(r)
	if !ok {
		respond.Error(w, http.StatusForbidden, "no school on this account")
		return
	}

	users, err := h.Users.ListBySchool(r.Context(), schoolID)
	if err != nil {
		h.Log.Error("failed to list directory", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load directory")
		return
	}

	q := text.Fold(strings.TrimSpace(r.URL.Query().Get("q")))
	roleFilter := r.URL.Query().Get("role")
	staff := authz.IsStaff(r)

	rows := make([]memberRow, 0, len(users))
	for _, u := range users {
		if roleFilter != "" && u.Role != roleFilter {
			continue
		}
		if q != "" && !strings.Contains(u.FullNameCI, q) {
			continue
		}
		row := memberRow{
			ID:        u.ID.Hex(),
			FullName:  u.FullName,
			Role:      u.Role,
			Grade:     u.Grade,
			AvatarURL: u.AvatarURL,
		}
		if staff {
			row.Email = u.Email
		}
		rows = append(rows, row)
	}

	respond.JSON(w, http.StatusOK, rows)
}

// Dependents handles GET /api/directory/dependents: the signed-in
// guardian's linked students.
func (h *Handler) Dependents(w http.ResponseWriter, r *http.Request) {
	if !authz.IsGuardian(r) {
		respond.Error(w, http.StatusForbidden, "guardians only")
		return
	}
	_, _, userID, ok := authz.UserCtx(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}

	kids, err := h.Users.Dependents(r.Context(), userID)
	if err != nil {
		h.Log.Error("failed to list dependents", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "could not load dependents")
		return
	}

	rows := make([]memberRow, 0, len(kids))
	for _, u := range kids {
		rows = append(rows, memberRow{
			ID:        u.ID.Hex(),
			FullName:  u.FullName,
			Role:      models.RoleStudent,
			Grade:     u.Grade,
			AvatarURL: u.AvatarURL,
		})
	}
	respond.JSON(w, http.StatusOK, rows)
}

// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the user's role, name, Mongo ObjectID, and a found flag.
// If no user is present in context or the user ID is malformed, it returns
// "visitor", "", NilObjectID, false, so ok=true always means a valid,
// authenticated user with a valid ObjectID.
func UserCtx(r *http.Request) (role string, name string, userID primitive.ObjectID, ok bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		return "visitor", "", primitive.NilObjectID, false
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		// Malformed user ID in session - fail closed.
		return "visitor", "", primitive.NilObjectID, false
	}
	return user.Role, user.Name, userID, true
}

// SchoolCtx returns the current user's school ObjectID. ok=false when the
// user is not signed in or carries no school (superadmin).
func SchoolCtx(r *http.Request) (primitive.ObjectID, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok || user.SchoolID == "" {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(user.SchoolID)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// IsStaff reports whether the current request's user is a teacher or principal.
func IsStaff(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && (role == models.RoleTeacher || role == models.RolePrincipal)
}

// IsGuardian reports whether the current request's user is a parent.
func IsGuardian(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleParent
}

// IsSuperAdmin reports whether the current request's user runs the registry.
func IsSuperAdmin(r *http.Request) bool {
	role, _, _, ok := UserCtx(r)
	return ok && role == models.RoleSuperAdmin
}

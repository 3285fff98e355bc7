package testutil

import (
	"net/http"
	"net/http/httptest"

	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionFor builds a session user matching a fixture user, for
// injecting into request contexts with WithUser.
func SessionFor(u models.User) *auth.SessionUser {
	su := &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
		Grade: u.Grade,
	}
	if u.SchoolID != nil {
		su.SchoolID = u.SchoolID.Hex()
	}
	return su
}

// TeacherSession returns a session user with the teacher role in the
// given school.
func TeacherSession(schoolID primitive.ObjectID) *auth.SessionUser {
	return &auth.SessionUser{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Test Teacher",
		Email:    "teacher@test.com",
		Role:     models.RoleTeacher,
		SchoolID: schoolID.Hex(),
	}
}

// ParentSession returns a session user with the parent role in the
// given school.
func ParentSession(schoolID primitive.ObjectID) *auth.SessionUser {
	return &auth.SessionUser{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Test Parent",
		Email:    "parent@test.com",
		Role:     models.RoleParent,
		SchoolID: schoolID.Hex(),
	}
}

// StudentSession returns a session user with the student role in the
// given school and grade.
func StudentSession(schoolID primitive.ObjectID, grade string) *auth.SessionUser {
	return &auth.SessionUser{
		ID:       primitive.NewObjectID().Hex(),
		Name:     "Test Student",
		Email:    "student@test.com",
		Role:     models.RoleStudent,
		SchoolID: schoolID.Hex(),
		Grade:    grade,
	}
}

// SuperAdminSession returns a superadmin session user (no school).
func SuperAdminSession() *auth.SessionUser {
	return &auth.SessionUser{
		ID:    primitive.NewObjectID().Hex(),
		Name:  "Test SuperAdmin",
		Email: "admin@test.com",
		Role:  models.RoleSuperAdmin,
	}
}

// WithUser adds a session user to the request context for testing
// authenticated handlers, bypassing the session middleware.
func WithUser(r *http.Request, su *auth.SessionUser) *http.Request {
	return auth.WithTestUser(r, su)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, su *auth.SessionUser) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return WithUser(req, su)
}

// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role values for portal users.
//
// Parents are linked to their students through Student.ParentID; a parent
// may have several dependents. SuperAdmin is reserved for the operator of
// the school registry and never carries a school_id.
const (
	RoleParent     = "parent"
	RoleTeacher    = "teacher"
	RoleStudent    = "student"
	RolePrincipal  = "principal"
	RoleSuperAdmin = "superadmin"
)

// StaffRoles are the roles allowed to see announcements and manage
// school content.
var StaffRoles = []string{RoleTeacher, RolePrincipal}

// User represents parents, teachers, students, and principals.
//
// Every user except the superadmin belongs to exactly one school
// (SchoolID is the tenant key on every query).
type User struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	FullName   string              `bson:"full_name" json:"full_name"`
	FullNameCI string              `bson:"full_name_ci" json:"full_name_ci"` // lowercase, diacritics-stripped
	Email      string              `bson:"email" json:"email"`
	AuthMethod string              `bson:"auth_method,omitempty" json:"auth_method,omitempty"`
	Role       string              `bson:"role" json:"role"`
	Status     string              `bson:"status,omitempty" json:"status,omitempty"`
	SchoolID   *primitive.ObjectID `bson:"school_id,omitempty" json:"school_id,omitempty"`
	AvatarURL  string              `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`

	// Grade applies to students; teachers use AllowedGrades instead.
	Grade         string   `bson:"grade,omitempty" json:"grade,omitempty"`
	AllowedGrades []string `bson:"allowed_grades,omitempty" json:"allowed_grades,omitempty"`

	// ParentID links a student to their guardian account.
	ParentID *primitive.ObjectID `bson:"parent_id,omitempty" json:"parent_id,omitempty"`

	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// IsStaff reports whether the user's role grants staff-level access
// (announcements, assignment management, alert logging).
func (u *User) IsStaff() bool {
	return u.Role == RoleTeacher || u.Role == RolePrincipal
}

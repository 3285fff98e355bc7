// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompletionWindow is how long a completed assignment stays hidden from
// the user who completed it.
const CompletionWindow = 24 * time.Hour

// Completion records one user's done-state for an assignment.
//
// HideUntil controls per-user visibility decay: while it is in the
// future the assignment is hidden from that user (and only that user).
type Completion struct {
	Done      bool      `bson:"done" json:"done"`
	HideUntil time.Time `bson:"hide_until,omitempty" json:"hide_until,omitempty"`
	DoneAt    time.Time `bson:"done_at,omitempty" json:"done_at,omitempty"`
}

// Assignment is a homework posting scoped to a school and grade.
//
// Completions is keyed by the acting user's hex id. The map is written
// with merge semantics so concurrent completions by different users do
// not clobber each other.
type Assignment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID    primitive.ObjectID `bson:"school_id" json:"school_id"`
	Grade       string             `bson:"grade" json:"grade"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Subject     string             `bson:"subject,omitempty" json:"subject,omitempty"`
	Visibility  string             `bson:"visibility,omitempty" json:"visibility,omitempty"` // "grade" (default) or "school"
	DueDate     time.Time          `bson:"due_date,omitempty" json:"due_date,omitempty"`

	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacher_id"`
	TeacherName string             `bson:"teacher_name,omitempty" json:"teacher_name,omitempty"`

	Completions map[string]Completion `bson:"completions,omitempty" json:"completions,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HiddenFor reports whether the assignment is currently inside the
// visibility-decay window for the given user. Staff are never subject
// to hiding; VisibleTo handles that rule.
func (a *Assignment) HiddenFor(userID string, now time.Time) bool {
	c, ok := a.Completions[userID]
	if !ok {
		return false
	}
	return now.Before(c.HideUntil)
}

// VisibleTo evaluates the per-render visibility rule: staff always see
// every assignment; everyone else is subject to their own completion
// entry's hide window.
func (a *Assignment) VisibleTo(u *User, now time.Time) bool {
	if u.IsStaff() {
		return true
	}
	return !a.HiddenFor(u.ID.Hex(), now)
}

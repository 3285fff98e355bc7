// internal/domain/models/alert.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Alert types logged by teachers about a student.
const (
	AlertAbsent = "absent"
	AlertSick   = "sick"
	AlertLate   = "late"
)

// ValidAlertType reports whether t is one of the known alert types.
func ValidAlertType(t string) bool {
	return t == AlertAbsent || t == AlertSick || t == AlertLate
}

// AlertComment is one entry in an alert's reply thread.
type AlertComment struct {
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Text       string             `bson:"text" json:"text"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// Alert is an absence/health record for a student, visible to the
// student's guardian. Unresolved alerts are "active"; resolving an
// alert deletes the document outright (no soft-delete flag survives
// in the collection).
type Alert struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID    primitive.ObjectID `bson:"school_id" json:"school_id"`
	StudentID   primitive.ObjectID `bson:"student_id" json:"student_id"`
	StudentName string             `bson:"student_name,omitempty" json:"student_name,omitempty"`
	TeacherID   primitive.ObjectID `bson:"teacher_id" json:"teacher_id"`
	TeacherName string             `bson:"teacher_name,omitempty" json:"teacher_name,omitempty"`
	Type        string             `bson:"type" json:"type"`
	Note        string             `bson:"note,omitempty" json:"note,omitempty"`
	Resolved    bool               `bson:"resolved" json:"resolved"`
	Comments    []AlertComment     `bson:"comments,omitempty" json:"comments,omitempty"`
	Timestamp   time.Time          `bson:"timestamp" json:"timestamp"`
}

// internal/domain/models/announcement.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Announcement priorities.
const (
	PriorityNormal = "normal"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Announcement is a staff bulletin. Only teacher/principal roles may
// read or write announcements; the feed is never served to parents or
// students.
type Announcement struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID   primitive.ObjectID `bson:"school_id" json:"school_id"`
	Title      string             `bson:"title" json:"title"`
	Body       string             `bson:"body,omitempty" json:"body,omitempty"`
	Priority   string             `bson:"priority,omitempty" json:"priority,omitempty"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name,omitempty" json:"author_name,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}

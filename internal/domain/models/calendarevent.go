// internal/domain/models/calendarevent.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EventDateLayout is the storage format for CalendarEvent.Date. Keeping
// the date as an ISO string means lexicographic order is chronological
// order, which is how the events feed sorts.
const EventDateLayout = "2006-01-02"

// CalendarEvent is an entry on a school's shared calendar.
type CalendarEvent struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID    primitive.ObjectID `bson:"school_id" json:"school_id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Date        string             `bson:"date" json:"date"` // EventDateLayout
	CreatedBy   primitive.ObjectID `bson:"created_by,omitempty" json:"created_by,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// internal/domain/models/yearbookentry.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// YearbookEntry is a post in the private class journal/yearbook.
//
// Likes is semantically a set of user hex ids even though it is stored
// as an array; membership is toggled atomically with $addToSet/$pull.
type YearbookEntry struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID   primitive.ObjectID `bson:"school_id" json:"school_id"`
	Grade      string             `bson:"grade" json:"grade"`
	Caption    string             `bson:"caption,omitempty" json:"caption,omitempty"`
	Images     []string           `bson:"images,omitempty" json:"images,omitempty"`
	Likes      []string           `bson:"likes,omitempty" json:"likes,omitempty"`
	AuthorID   primitive.ObjectID `bson:"author_id" json:"author_id"`
	AuthorName string             `bson:"author_name,omitempty" json:"author_name,omitempty"`
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

// LikedBy reports whether the given user hex id is in the like set.
func (e *YearbookEntry) LikedBy(userID string) bool {
	for _, id := range e.Likes {
		if id == userID {
			return true
		}
	}
	return false
}

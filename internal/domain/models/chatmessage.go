// internal/domain/models/chatmessage.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChatMessage is a message in a school's shared chat room.
// Ordering is always by Timestamp ascending.
type ChatMessage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SchoolID     primitive.ObjectID `bson:"school_id" json:"school_id"`
	SenderID     primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	SenderName   string             `bson:"sender_name,omitempty" json:"sender_name,omitempty"`
	SenderRole   string             `bson:"sender_role,omitempty" json:"sender_role,omitempty"`
	SenderAvatar string             `bson:"sender_avatar,omitempty" json:"sender_avatar,omitempty"`
	Text         string             `bson:"text" json:"text"`
	Timestamp    time.Time          `bson:"timestamp" json:"timestamp"`
}

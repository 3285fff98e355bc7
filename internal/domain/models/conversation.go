// internal/domain/models/conversation.go
package models

import (
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Conversation is a one-to-one direct-message thread.
//
// The document id is deterministic: the two participant ids sorted
// lexicographically and joined with "_". Initiating a chat from either
// side therefore resolves to the same document, making creation
// idempotent without a lookup-then-insert race.
type Conversation struct {
	ID           string               `bson:"_id" json:"id"`
	SchoolID     primitive.ObjectID   `bson:"school_id" json:"school_id"`
	Participants []primitive.ObjectID `bson:"participants" json:"participants"` // exactly 2

	// Display snapshots keyed by participant hex id, taken at creation.
	ParticipantNames   map[string]string `bson:"participant_names,omitempty" json:"participant_names,omitempty"`
	ParticipantAvatars map[string]string `bson:"participant_avatars,omitempty" json:"participant_avatars,omitempty"`

	LastMessage   string    `bson:"last_message,omitempty" json:"last_message,omitempty"`
	LastSenderID  string    `bson:"last_sender_id,omitempty" json:"last_sender_id,omitempty"`
	LastTimestamp time.Time `bson:"last_timestamp,omitempty" json:"last_timestamp,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// ConversationID derives the deterministic thread id for two users.
func ConversationID(a, b primitive.ObjectID) string {
	ids := []string{a.Hex(), b.Hex()}
	sort.Strings(ids)
	return strings.Join(ids, "_")
}

// OtherParticipant returns the participant that is not the given user.
// The second return is false when the user is not in the conversation.
func (c *Conversation) OtherParticipant(userID primitive.ObjectID) (primitive.ObjectID, bool) {
	found := false
	var other primitive.ObjectID
	for _, p := range c.Participants {
		if p == userID {
			found = true
		} else {
			other = p
		}
	}
	if !found || other.IsZero() {
		return primitive.ObjectID{}, false
	}
	return other, true
}

// DirectMessage is one message inside a Conversation.
type DirectMessage struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ConversationID string             `bson:"conversation_id" json:"conversation_id"`
	SenderID       primitive.ObjectID `bson:"sender_id" json:"sender_id"`
	Text           string             `bson:"text" json:"text"`
	Timestamp      time.Time          `bson:"timestamp" json:"timestamp"`
}

// internal/domain/models/userstate.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserState is the per-user portal state document (one per user).
//
// It carries the active tab, the open conversation, and the per-feed
// last-read watermarks that unread derivation compares against. The
// whole document is deleted on sign-out.
type UserState struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID               primitive.ObjectID   `bson:"user_id" json:"user_id"`
	ActiveTab            string               `bson:"active_tab,omitempty" json:"active_tab,omitempty"`
	ActiveConversationID string               `bson:"active_conversation_id,omitempty" json:"active_conversation_id,omitempty"`
	LastRead             map[string]time.Time `bson:"last_read,omitempty" json:"last_read,omitempty"`
	UpdatedAt            time.Time            `bson:"updated_at" json:"updated_at"`
}

// internal/app/store/readmarks/readmarkstore.go
package readmarkstore

import (
	"context"
	"time"

	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the user_state collection: one document per
// user carrying the active tab, the open conversation, and the
// per-feed last-read watermarks that unread derivation compares
// against. Everything here is cleared on sign-out.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("user_state")}
}

// Get returns the state document for a user, or an empty default when
// none has been written yet.
func (s *Store) Get(ctx context.Context, userID primitive.ObjectID) (models.UserState, error) {
	var st models.UserState
	err := s.c.FindOne(ctx, bson.M{"user_id": userID}).Decode(&st)
	if err == mongo.ErrNoDocuments {
		return models.UserState{UserID: userID}, nil
	}
	if err != nil {
		return models.UserState{}, err
	}
	return st, nil
}

// GetLastRead returns the watermark for one feed; the zero time means
// the watermark was never set.
func (s *Store) GetLastRead(ctx context.Context, userID primitive.ObjectID, feed string) (time.Time, error) {
	st, err := s.Get(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	return st.LastRead[feed], nil
}

// SetLastRead advances the watermark for one feed (merge upsert; other
// feeds' watermarks are untouched).
func (s *Store) SetLastRead(ctx context.Context, userID primitive.ObjectID, feed string, ts time.Time) error {
	return s.patch(ctx, userID, bson.M{"last_read." + feed: ts})
}

// SetActiveTab records the tab the user is currently viewing.
func (s *Store) SetActiveTab(ctx context.Context, userID primitive.ObjectID, tab string) error {
	return s.patch(ctx, userID, bson.M{"active_tab": tab})
}

// SetActiveConversation records the open direct-message thread.
func (s *Store) SetActiveConversation(ctx context.Context, userID primitive.ObjectID, conversationID string) error {
	return s.patch(ctx, userID, bson.M{"active_conversation_id": conversationID})
}

// Clear drops the whole state document (sign-out).
func (s *Store) Clear(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

func (s *Store) patch(ctx context.Context, userID primitive.ObjectID, set bson.M) error {
	set["updated_at"] = time.Now().UTC()
	update := bson.M{
		"$set":         set,
		"$setOnInsert": bson.M{"_id": primitive.NewObjectID(), "user_id": userID},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"user_id": userID}, update, opts)
	return err
}

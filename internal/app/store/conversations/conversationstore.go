// internal/app/store/conversations/conversationstore.go
package conversationstore

import (
	"context"
	"time"

	"github.com/homeclass/portal/internal/app/store/watch"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Store provides access to the conversations collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("conversations")}
}

// GetByID loads a conversation by its deterministic string id.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	var c models.Conversation
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

// Ensure creates the conversation document if it does not exist, or
// returns the existing one unmodified. Because the id is derived from
// the sorted participant pair, racing creations from both sides upsert
// the same document and exactly one thread ever exists for the pair.
func (s *Store) Ensure(ctx context.Context, c models.Conversation) (*models.Conversation, error) {
	c.ID = models.ConversationID(c.Participants[0], c.Participants[1])
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	update := bson.M{
		"$setOnInsert": bson.M{
			"school_id":           c.SchoolID,
			"participants":        c.Participants,
			"participant_names":   c.ParticipantNames,
			"participant_avatars": c.ParticipantAvatars,
			"last_message":        "",
			"created_at":          c.CreatedAt,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var out models.Conversation
	if err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": c.ID}, update, opts).Decode(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListForUser returns every conversation the user participates in,
// most recently active first. This backs the inbox feed.
func (s *Store) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Conversation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "last_timestamp", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"participants": userID}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.Conversation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetLastMessage patches the conversation preview after a send.
func (s *Store) SetLastMessage(ctx context.Context, id string, senderID primitive.ObjectID, text string, ts time.Time) error {
	set := bson.M{
		"last_message":   text,
		"last_sender_id": senderID.Hex(),
		"last_timestamp": ts,
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Watch opens the change stream backing the inbox feed for one user.
func (s *Store) Watch(ctx context.Context, userID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Filtered(ctx, s.c, bson.M{"fullDocument.participants": userID})
}

// internal/app/store/directmessages/messagestore.go
package messagestore

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

// Store provides access to the direct_messages collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("direct_messages")}
}

// Create inserts a direct message.
func (s *Store) Create(ctx context.Context, m models.DirectMessage) (models.DirectMessage, error) {
	m.ID = primitive.NewObjectID()
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.DirectMessage{}, err
	}
	return m, nil
}

// ListByConversation returns a thread's messages, timestamp ascending.
func (s *Store) ListByConversation(ctx context.Context, conversationID string) ([]models.DirectMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"conversation_id": conversationID}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.DirectMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Watch opens a change stream for one conversation's messages.
func (s *Store) Watch(ctx context.Context, conversationID string) (*mongo.ChangeStream, error) {
	return watch.Filtered(ctx, s.c, bson.M{"fullDocument.conversation_id": conversationID})
}

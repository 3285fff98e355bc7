// internal/app/store/chatmessages/chatstore.go
package chatstore

import (
	"context"
	"errors"
	"time"

	"github.com/homeclass/portal/internal/app/store/watch"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var errMissingSchool = errors.New("chat message write requires school_id")

// Store provides access to the chat_messages collection (the shared
// school chat room).
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("chat_messages")}
}

// Create inserts a chat message.
func (s *Store) Create(ctx context.Context, m models.ChatMessage) (models.ChatMessage, error) {
	if m.SchoolID.IsZero() {
		return models.ChatMessage{}, errMissingSchool
	}
	m.ID = primitive.NewObjectID()
	if m.Timestamp.IsZero() {
		m.Timestamp = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, m); err != nil {
		return models.ChatMessage{}, err
	}
	return m, nil
}

// ListBySchool returns a school's chat history, timestamp ascending.
func (s *Store) ListBySchool(ctx context.Context, schoolID primitive.ObjectID) ([]models.ChatMessage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"school_id": schoolID}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.ChatMessage
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a chat message (staff moderation). The filter is
// school-scoped; returns mongo.ErrNoDocuments when the id does not
// exist in that school.
func (s *Store) Delete(ctx context.Context, schoolID, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "school_id": schoolID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Watch opens the change stream backing the chat feed.
func (s *Store) Watch(ctx context.Context, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Tenant(ctx, s.c, schoolID)
}

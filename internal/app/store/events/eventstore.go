// internal/app/store/events/eventstore.go
package eventstore

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

// Store provides access to the calendar_events collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("calendar_events")}
}

// Create inserts a calendar event.
func (s *Store) Create(ctx context.Context, e models.CalendarEvent) (models.CalendarEvent, error) {
	e.ID = primitive.NewObjectID()
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.CalendarEvent{}, err
	}
	return e, nil
}

// ListBySchool returns a school's events sorted by date ascending.
// Dates are ISO strings, so the lexicographic index order is already
// chronological.
func (s *Store) ListBySchool(ctx context.Context, schoolID primitive.ObjectID) ([]models.CalendarEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"school_id": schoolID}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.CalendarEvent
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an event. The filter is school-scoped; returns
// mongo.ErrNoDocuments when the id does not exist in that school.
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

// Watch opens the change stream backing the events feed.
func (s *Store) Watch(ctx context.Context, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Tenant(ctx, s.c, schoolID)
}

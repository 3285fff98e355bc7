// internal/app/store/announcements/announcementstore.go
package announcementstore

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

// Store provides access to the announcements collection. The feed is
// staff-only; role gating happens in the handler and the sync session,
// not here.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("announcements")}
}

// Create inserts a new announcement.
func (s *Store) Create(ctx context.Context, a models.Announcement) (models.Announcement, error) {
	a.ID = primitive.NewObjectID()
	if a.Priority == "" {
		a.Priority = models.PriorityNormal
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Announcement{}, err
	}
	return a, nil
}

// ListBySchool returns a school's announcements, newest first.
func (s *Store) ListBySchool(ctx context.Context, schoolID primitive.ObjectID) ([]models.Announcement, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"school_id": schoolID}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.Announcement
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes an announcement. The filter is school-scoped;
// returns mongo.ErrNoDocuments when the id does not exist in that
// school.
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

// Watch opens the change stream backing the staff announcements feed.
func (s *Store) Watch(ctx context.Context, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Tenant(ctx, s.c, schoolID)
}

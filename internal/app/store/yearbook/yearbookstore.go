// internal/app/store/yearbook/yearbookstore.go
package yearbookstore

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

// ErrMissingSchool is returned for writes without a tenant id. Like
// assignments, the yearbook collection rejects untenanted documents.
var ErrMissingSchool = errors.New("yearbook write requires school_id")

// Store provides access to the yearbook_entries collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("yearbook_entries")}
}

// GetByID loads an entry by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.YearbookEntry, error) {
	var e models.YearbookEntry
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Create inserts a new journal entry.
func (s *Store) Create(ctx context.Context, e models.YearbookEntry) (models.YearbookEntry, error) {
	if e.SchoolID.IsZero() {
		return models.YearbookEntry{}, ErrMissingSchool
	}
	e.ID = primitive.NewObjectID()
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, e); err != nil {
		return models.YearbookEntry{}, err
	}
	return e, nil
}

// ListBySchool returns a school's entries, newest first. When grade is
// non-empty the list is narrowed to that grade's journal.
func (s *Store) ListBySchool(ctx context.Context, schoolID primitive.ObjectID, grade string) ([]models.YearbookEntry, error) {
	q := bson.M{"school_id": schoolID}
	if grade != "" {
		q["grade"] = grade
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	var out []models.YearbookEntry
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ToggleLike flips the user's membership in the like set. Likes are
// stored as an array but treated as a set: $addToSet/$pull keep the
// toggle idempotent per round trip even under concurrent taps.
func (s *Store) ToggleLike(ctx context.Context, id primitive.ObjectID, userID string) (liked bool, err error) {
	e, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}

	var update bson.M
	if e.LikedBy(userID) {
		update = bson.M{"$pull": bson.M{"likes": userID}}
		liked = false
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
		liked = true
	}

	_, err = s.c.UpdateOne(ctx, bson.M{"_id": id}, update)
	return liked, err
}

// Delete removes an entry (author or staff action).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Watch opens the change stream backing the journal feed.
func (s *Store) Watch(ctx context.Context, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Tenant(ctx, s.c, schoolID)
}

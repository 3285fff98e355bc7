// internal/app/store/assignments/assignmentstore.go
package assignmentstore

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

// ErrMissingSchool is returned for writes without a tenant id. The
// assignments collection rejects untenanted documents outright.
var ErrMissingSchool = errors.New("assignment write requires school_id")

// Store provides access to the assignments collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("assignments")}
}

// GetByID loads an assignment by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Assignment, error) {
	var a models.Assignment
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new assignment.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if a.SchoolID.IsZero() {
		return models.Assignment{}, ErrMissingSchool
	}
	a.ID = primitive.NewObjectID()
	if a.Visibility == "" {
		a.Visibility = "grade"
	}
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// ListBySchool returns a school's assignments sorted by creation time
// ascending. Per-user visibility decay is applied by the caller, not
// the query, so staff views see everything.
func (s *Store) ListBySchool(ctx context.Context, schoolID primitive.ObjectID) ([]models.Assignment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"school_id": schoolID}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SetCompletion merge-writes one user's completion entry. Other users'
// entries on the same document are untouched, so concurrent completions
// never clobber each other.
func (s *Store) SetCompletion(ctx context.Context, id primitive.ObjectID, userID string, c models.Completion) error {
	set := bson.M{
		"completions." + userID: c,
		"updated_at":            time.Now().UTC(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// ClearHideWindow zeroes one user's hide window ("undo" before the
// 24-hour window lapses). The done flag is cleared with it.
func (s *Store) ClearHideWindow(ctx context.Context, id primitive.ObjectID, userID string) error {
	set := bson.M{
		"completions." + userID: models.Completion{},
		"updated_at":            time.Now().UTC(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes an assignment (teacher/principal action).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// ExpireHideWindows resets completion entries whose hide window has
// lapsed, across all tenants. The document itself is never deleted;
// one user's elapsed timer only restores that user's visibility.
// Returns the number of assignments touched.
func (s *Store) ExpireHideWindows(ctx context.Context, now time.Time) (int64, error) {
	cur, err := s.c.Find(ctx, bson.M{"completions": bson.M{"$exists": true, "$ne": bson.M{}}})
	if err != nil {
		return 0, err
	}
	var all []models.Assignment
	if err := cur.All(ctx, &all); err != nil {
		return 0, err
	}

	var touched int64
	for _, a := range all {
		unset := bson.M{}
		for userID, c := range a.Completions {
			if !c.HideUntil.IsZero() && !now.Before(c.HideUntil) {
				unset["completions."+userID+".hide_until"] = ""
			}
		}
		if len(unset) == 0 {
			continue
		}
		if _, err := s.c.UpdateOne(ctx, bson.M{"_id": a.ID}, bson.M{"$unset": unset}); err != nil {
			return touched, err
		}
		touched++
	}
	return touched, nil
}

// Watch opens the change stream backing the homework feed.
func (s *Store) Watch(ctx context.Context, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Tenant(ctx, s.c, schoolID)
}

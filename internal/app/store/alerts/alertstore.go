// internal/app/store/alerts/alertstore.go
package alertstore

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

var errBadType = errors.New(`alert type must be "absent"|"sick"|"late"`)

// Store provides access to the alerts collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("alerts")}
}

// GetByID loads an alert by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Alert, error) {
	var a models.Alert
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new alert.
func (s *Store) Create(ctx context.Context, a models.Alert) (models.Alert, error) {
	if !models.ValidAlertType(a.Type) {
		return models.Alert{}, errBadType
	}
	a.ID = primitive.NewObjectID()
	a.Resolved = false
	if a.Timestamp.IsZero() {
		a.Timestamp = time.Now().UTC()
	}
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Alert{}, err
	}
	return a, nil
}

// ListActiveBySchool returns a school's unresolved alerts, newest first.
func (s *Store) ListActiveBySchool(ctx context.Context, schoolID primitive.ObjectID) ([]models.Alert, error) {
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"school_id": schoolID, "resolved": false}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.Alert
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AddComment appends to the alert's reply thread.
func (s *Store) AddComment(ctx context.Context, id primitive.ObjectID, c models.AlertComment) error {
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": c}})
	return err
}

// Resolve deletes the alert. Resolution is a hard delete, not a status
// flip: after resolving, the record is unfetchable by id.
func (s *Store) Resolve(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Watch opens the change stream backing the alerts feed.
func (s *Store) Watch(ctx context.Context, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Tenant(ctx, s.c, schoolID)
}

// internal/app/store/schools/schoolstore.go
package schoolstore

import (
	"context"
	"errors"
	"time"

	"github.com/homeclass/portal/internal/app/system/normalize"
	"github.com/homeclass/portal/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateName is returned when a school with the same name already
// exists in the registry.
var ErrDuplicateName = errors.New("a school with this name already exists")

// Store provides access to the schools registry collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("schools")}
}

// GetByID loads a school by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.School, error) {
	var sc models.School
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&sc); err != nil {
		return nil, err
	}
	return &sc, nil
}

// List returns every school, sorted by name.
func (s *Store) List(ctx context.Context) ([]models.School, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var out []models.School
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a new school into the registry.
func (s *Store) Create(ctx context.Context, sc models.School) (models.School, error) {
	sc.ID = primitive.NewObjectID()
	sc.Name = normalize.Name(sc.Name)
	sc.NameCI = text.Fold(sc.Name)

	now := time.Now().UTC()
	sc.CreatedAt = now
	sc.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, sc); err != nil {
		if wafflemongo.IsDup(err) {
			return models.School{}, ErrDuplicateName
		}
		return models.School{}, err
	}
	return sc, nil
}

// Update merges the mutable registry fields of a school.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, name, level, logoURL string) error {
	name = normalize.Name(name)
	set := bson.M{
		"name":       name,
		"name_ci":    text.Fold(name),
		"level":      level,
		"logo_url":   logoURL,
		"updated_at": time.Now().UTC(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if wafflemongo.IsDup(err) {
		return ErrDuplicateName
	}
	return err
}

// Delete removes a school from the registry. Callers are responsible
// for what happens to the school's users.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

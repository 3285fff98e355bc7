// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/homeclass/portal/internal/app/store/watch"
	"github.com/homeclass/portal/internal/app/system/normalize"
	"github.com/homeclass/portal/internal/app/system/status"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "parent"|"teacher"|"student"|"principal"|"superadmin"`)
	errBadStatus      = errors.New(`status must be "active"|"disabled"`)
	errSchoolNeeded   = errors.New("all roles except superadmin must have school_id")
)

// Store provides access to the users collection.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing & validating fields.
func (s *Store) Create(ctx context.Context, u models.User) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Grade = normalize.Grade(u.Grade)
	if u.Status == "" {
		u.Status = status.Active
	}

	switch u.Role {
	case models.RoleParent, models.RoleTeacher, models.RoleStudent, models.RolePrincipal, models.RoleSuperAdmin:
		// ok
	default:
		return models.User{}, errBadRole
	}

	if !status.IsValid(u.Status) {
		return models.User{}, errBadStatus
	}

	// Tenant isolation: every portal user belongs to a school.
	if u.Role != models.RoleSuperAdmin && u.SchoolID == nil {
		return models.User{}, errSchoolNeeded
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// ListBySchool returns every user in a school, sorted by folded name.
// This backs the directory feed.
func (s *Store) ListBySchool(ctx context.Context, schoolID primitive.ObjectID) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "full_name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"school_id": schoolID}, opts)
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dependents returns the students whose parent_id is the given guardian.
func (s *Store) Dependents(ctx context.Context, parentID primitive.ObjectID) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{"parent_id": parentID, "role": models.RoleStudent})
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecipientFilter narrows broadcast notification fan-out.
// Zero-value fields are not applied.
type RecipientFilter struct {
	Roles []string
	Grade string
}

// ListRecipients returns the users in a school matching the filter,
// excluding the acting user. Used by the notification dispatcher to
// resolve broadcast recipient sets.
func (s *Store) ListRecipients(ctx context.Context, schoolID primitive.ObjectID, f RecipientFilter, exclude primitive.ObjectID) ([]models.User, error) {
	q := bson.M{
		"school_id": schoolID,
		"_id":       bson.M{"$ne": exclude},
		"status":    status.Active,
	}
	if len(f.Roles) > 0 {
		q["role"] = bson.M{"$in": f.Roles}
	}
	if f.Grade != "" {
		// Students match on their own grade; their guardians are
		// matched separately by the dispatcher via Dependents.
		q["grade"] = f.Grade
	}
	cur, err := s.c.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	var out []models.User
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PrincipalExists scans for an existing principal account in a school.
// Principal uniqueness is enforced at signup time by this scan, not by
// a database constraint.
func (s *Store) PrincipalExists(ctx context.Context, schoolID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"school_id": schoolID, "role": models.RolePrincipal}).Err()
	if err == nil {
		return true, nil
	}
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	return false, err
}

// UpdateProfile merges mutable profile fields.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, fullName, avatarURL string) error {
	fullName = normalize.Name(fullName)
	set := bson.M{
		"full_name":    fullName,
		"full_name_ci": text.Fold(fullName),
		"avatar_url":   avatarURL,
		"updated_at":   time.Now().UTC(),
	}
	_, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	return err
}

// Delete removes a user by ID.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Watch opens the change stream backing the directory feed.
func (s *Store) Watch(ctx context.Context, schoolID primitive.ObjectID) (*mongo.ChangeStream, error) {
	return watch.Tenant(ctx, s.c, schoolID)
}

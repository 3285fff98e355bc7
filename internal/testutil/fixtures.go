package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"github.com/homeclass/portal/internal/app/system/status"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateSchool creates a school registry entry with the given name.
func (f *Fixtures) CreateSchool(ctx context.Context, name string) models.School {
	f.t.Helper()

	now := time.Now().UTC()
	school := models.School{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Level:     "primary",
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("schools").InsertOne(ctx, school); err != nil {
		f.t.Fatalf("failed to create test school: %v", err)
	}
	return school
}

// CreateUser creates a user with the given role in the given school.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string, schoolID primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       role,
		Status:     status.Active,
		SchoolID:   &schoolID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTeacher creates a teacher in the given school.
func (f *Fixtures) CreateTeacher(ctx context.Context, fullName, email string, schoolID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleTeacher, schoolID)
}

// CreateParent creates a parent in the given school.
func (f *Fixtures) CreateParent(ctx context.Context, fullName, email string, schoolID primitive.ObjectID) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleParent, schoolID)
}

// CreateStudent creates a student in the given grade, optionally linked
// to a guardian account.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email, grade string, schoolID primitive.ObjectID, parentID *primitive.ObjectID) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       models.RoleStudent,
		Status:     status.Active,
		SchoolID:   &schoolID,
		Grade:      grade,
		ParentID:   parentID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test student: %v", err)
	}
	return user
}

// CreateAssignment creates a homework posting for the given grade.
func (f *Fixtures) CreateAssignment(ctx context.Context, title, grade string, schoolID primitive.ObjectID, teacher models.User) models.Assignment {
	f.t.Helper()

	now := time.Now().UTC()
	a := models.Assignment{
		ID:          primitive.NewObjectID(),
		SchoolID:    schoolID,
		Grade:       grade,
		Title:       title,
		Visibility:  "grade",
		TeacherID:   teacher.ID,
		TeacherName: teacher.FullName,
		DueDate:     now.Add(72 * time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateAlert logs an alert about the given student.
func (f *Fixtures) CreateAlert(ctx context.Context, alertType string, student, teacher models.User, schoolID primitive.ObjectID) models.Alert {
	f.t.Helper()

	a := models.Alert{
		ID:          primitive.NewObjectID(),
		SchoolID:    schoolID,
		StudentID:   student.ID,
		StudentName: student.FullName,
		TeacherID:   teacher.ID,
		TeacherName: teacher.FullName,
		Type:        alertType,
		Timestamp:   time.Now().UTC(),
	}

	if _, err := f.db.Collection("alerts").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test alert: %v", err)
	}
	return a
}

// CreateAnnouncement creates a staff bulletin.
func (f *Fixtures) CreateAnnouncement(ctx context.Context, title string, schoolID primitive.ObjectID, author models.User) models.Announcement {
	f.t.Helper()

	a := models.Announcement{
		ID:         primitive.NewObjectID(),
		SchoolID:   schoolID,
		Title:      title,
		Priority:   models.PriorityNormal,
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		CreatedAt:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("announcements").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test announcement: %v", err)
	}
	return a
}

// CreateYearbookEntry creates a journal post for the given grade.
func (f *Fixtures) CreateYearbookEntry(ctx context.Context, caption, grade string, schoolID primitive.ObjectID, author models.User) models.YearbookEntry {
	f.t.Helper()

	e := models.YearbookEntry{
		ID:         primitive.NewObjectID(),
		SchoolID:   schoolID,
		Grade:      grade,
		Caption:    caption,
		AuthorID:   author.ID,
		AuthorName: author.FullName,
		Timestamp:  time.Now().UTC(),
	}

	if _, err := f.db.Collection("yearbook_entries").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test yearbook entry: %v", err)
	}
	return e
}

// CreateEvent creates a calendar event on the given date.
func (f *Fixtures) CreateEvent(ctx context.Context, title, date string, schoolID primitive.ObjectID, createdBy models.User) models.CalendarEvent {
	f.t.Helper()

	e := models.CalendarEvent{
		ID:        primitive.NewObjectID(),
		SchoolID:  schoolID,
		Title:     title,
		Date:      date,
		CreatedBy: createdBy.ID,
		CreatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("calendar_events").InsertOne(ctx, e); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return e
}

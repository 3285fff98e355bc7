package alertstore_test

import (
	"testing"
	"time"

	alertstore "github.com/homeclass/portal/internal/app/store/alerts"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/homeclass/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestCreate_RejectsUnknownType(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := alertstore.New(db)
	_, err := store.Create(ctx, models.Alert{
		SchoolID:  primitive.NewObjectID(),
		StudentID: primitive.NewObjectID(),
		TeacherID: primitive.NewObjectID(),
		Type:      "vacationing",
	})
	if err == nil {
		t.Error("expected error for unknown alert type")
	}
}

func TestListActiveBySchool_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	school := fx.CreateSchool(ctx, "Hilltop Primary")
	teacher := fx.CreateTeacher(ctx, "Ms. Frizzle", "frizzle@test.com", school.ID)
	student := fx.CreateStudent(ctx, "Sam Student", "sam@test.com", "Grade 2", school.ID, nil)

	store := alertstore.New(db)
	first, err := store.Create(ctx, models.Alert{
		SchoolID: school.ID, StudentID: student.ID, StudentName: student.FullName,
		TeacherID: teacher.ID, Type: models.AlertLate,
		Timestamp: time.Now().UTC().Add(-time.Hour),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	second, err := store.Create(ctx, models.Alert{
		SchoolID: school.ID, StudentID: student.ID, StudentName: student.FullName,
		TeacherID: teacher.ID, Type: models.AlertSick,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	list, err := store.ListActiveBySchool(ctx, school.ID)
	if err != nil {
		t.Fatalf("ListActiveBySchool failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 alerts, got %d", len(list))
	}
	if list[0].ID != second.ID || list[1].ID != first.ID {
		t.Error("expected newest alert first")
	}
}

func TestAddComment_AppendsToThread(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := alertstore.New(db)
	a, err := store.Create(ctx, models.Alert{
		SchoolID:  primitive.NewObjectID(),
		StudentID: primitive.NewObjectID(),
		TeacherID: primitive.NewObjectID(),
		Type:      models.AlertAbsent,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	guardian := primitive.NewObjectID()
	if err := store.AddComment(ctx, a.ID, models.AlertComment{
		AuthorID: guardian, AuthorName: "Pat Parent", Text: "He has a fever, back Monday",
	}); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if err := store.AddComment(ctx, a.ID, models.AlertComment{
		AuthorID: a.TeacherID, AuthorName: "Ms. Frizzle", Text: "Thanks, get well soon",
	}); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(got.Comments))
	}
	if got.Comments[0].AuthorID != guardian {
		t.Error("comments out of order")
	}
	if got.Comments[0].Timestamp.IsZero() {
		t.Error("expected comment timestamp to be set")
	}
}

func TestResolve_HardDeletes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := alertstore.New(db)
	a, err := store.Create(ctx, models.Alert{
		SchoolID:  primitive.NewObjectID(),
		StudentID: primitive.NewObjectID(),
		TeacherID: primitive.NewObjectID(),
		Type:      models.AlertSick,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Resolve(ctx, a.ID); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	// Resolution deletes the document; it is unfetchable afterward.
	if _, err := store.GetByID(ctx, a.ID); err != mongo.ErrNoDocuments {
		t.Errorf("expected ErrNoDocuments after resolve, got %v", err)
	}
}

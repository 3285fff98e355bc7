package yearbookstore_test

import (
	"testing"

	yearbookstore "github.com/homeclass/portal/internal/app/store/yearbook"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/homeclass/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_RequiresSchool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := yearbookstore.New(db)
	_, err := store.Create(ctx, models.YearbookEntry{Caption: "field trip"})
	if err != yearbookstore.ErrMissingSchool {
		t.Errorf("expected ErrMissingSchool, got %v", err)
	}
}

func TestToggleLike(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := yearbookstore.New(db)
	e, err := store.Create(ctx, models.YearbookEntry{
		SchoolID: primitive.NewObjectID(),
		Grade:    "Grade 6",
		Caption:  "Sports day",
		AuthorID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	userID := primitive.NewObjectID().Hex()

	liked, err := store.ToggleLike(ctx, e.ID, userID)
	if err != nil {
		t.Fatalf("first ToggleLike failed: %v", err)
	}
	if !liked {
		t.Error("first toggle should like the entry")
	}

	got, _ := store.GetByID(ctx, e.ID)
	if !got.LikedBy(userID) {
		t.Error("like set should contain the user")
	}
	if len(got.Likes) != 1 {
		t.Errorf("expected 1 like, got %d", len(got.Likes))
	}

	liked, err = store.ToggleLike(ctx, e.ID, userID)
	if err != nil {
		t.Fatalf("second ToggleLike failed: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike the entry")
	}

	got, _ = store.GetByID(ctx, e.ID)
	if got.LikedBy(userID) {
		t.Error("like set should no longer contain the user")
	}
}

func TestToggleLike_SetSemantics(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := yearbookstore.New(db)
	e, err := store.Create(ctx, models.YearbookEntry{
		SchoolID: primitive.NewObjectID(),
		Grade:    "Grade 6",
		Caption:  "Bake sale",
		AuthorID: primitive.NewObjectID(),
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	a := primitive.NewObjectID().Hex()
	b := primitive.NewObjectID().Hex()

	for _, uid := range []string{a, b} {
		if _, err := store.ToggleLike(ctx, e.ID, uid); err != nil {
			t.Fatalf("ToggleLike(%s) failed: %v", uid, err)
		}
	}

	got, _ := store.GetByID(ctx, e.ID)
	if len(got.Likes) != 2 {
		t.Fatalf("expected 2 likes, got %d", len(got.Likes))
	}

	// Unliking one user leaves the other's like intact.
	if _, err := store.ToggleLike(ctx, e.ID, a); err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	got, _ = store.GetByID(ctx, e.ID)
	if got.LikedBy(a) || !got.LikedBy(b) {
		t.Errorf("like set wrong after partial unlike: %v", got.Likes)
	}
}

func TestListBySchool_GradeNarrowing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fx := testutil.NewFixtures(t, db)
	school := fx.CreateSchool(ctx, "Hilltop Primary")
	author := fx.CreateTeacher(ctx, "Ms. Frizzle", "frizzle@test.com", school.ID)
	fx.CreateYearbookEntry(ctx, "Grade 3 outing", "Grade 3", school.ID, author)
	fx.CreateYearbookEntry(ctx, "Grade 5 play", "Grade 5", school.ID, author)

	store := yearbookstore.New(db)

	all, err := store.ListBySchool(ctx, school.ID, "")
	if err != nil {
		t.Fatalf("ListBySchool failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("staff view: expected 2 entries, got %d", len(all))
	}

	narrowed, err := store.ListBySchool(ctx, school.ID, "Grade 3")
	if err != nil {
		t.Fatalf("ListBySchool failed: %v", err)
	}
	if len(narrowed) != 1 || narrowed[0].Caption != "Grade 3 outing" {
		t.Errorf("grade view: got %+v", narrowed)
	}
}

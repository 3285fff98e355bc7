package assignmentstore_test

import (
	"testing"
	"time"

	assignmentstore "github.com/homeclass/portal/internal/app/store/assignments"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/homeclass/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreate_RequiresSchool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := assignmentstore.New(db)
	_, err := store.Create(ctx, models.Assignment{Title: "Untethered"})
	if err != assignmentstore.ErrMissingSchool {
		t.Errorf("expected ErrMissingSchool, got %v", err)
	}
}

func TestCreate_DefaultsVisibilityToGrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := assignmentstore.New(db)
	a, err := store.Create(ctx, models.Assignment{
		SchoolID: primitive.NewObjectID(),
		Grade:    "Grade 4",
		Title:    "Fractions worksheet",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if a.Visibility != "grade" {
		t.Errorf("visibility: got %q, want grade", a.Visibility)
	}
}

func TestSetCompletion_MergesPerUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := assignmentstore.New(db)
	a, err := store.Create(ctx, models.Assignment{
		SchoolID: primitive.NewObjectID(),
		Grade:    "Grade 4",
		Title:    "Reading log",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	userA := primitive.NewObjectID().Hex()
	userB := primitive.NewObjectID().Hex()

	for _, uid := range []string{userA, userB} {
		err := store.SetCompletion(ctx, a.ID, uid, models.Completion{
			Done:      true,
			DoneAt:    now,
			HideUntil: now.Add(models.CompletionWindow),
		})
		if err != nil {
			t.Fatalf("SetCompletion(%s) failed: %v", uid, err)
		}
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if len(got.Completions) != 2 {
		t.Fatalf("expected 2 completion entries, got %d", len(got.Completions))
	}
	// One user's entry never clobbers the other's.
	if !got.Completions[userA].Done || !got.Completions[userB].Done {
		t.Error("both users' completions should be present")
	}
}

func TestClearHideWindow_RestoresVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := assignmentstore.New(db)
	a, err := store.Create(ctx, models.Assignment{
		SchoolID: primitive.NewObjectID(),
		Grade:    "Grade 4",
		Title:    "Spelling list",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	now := time.Now().UTC()
	userID := primitive.NewObjectID().Hex()
	if err := store.SetCompletion(ctx, a.ID, userID, models.Completion{
		Done:      true,
		DoneAt:    now,
		HideUntil: now.Add(models.CompletionWindow),
	}); err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}

	got, _ := store.GetByID(ctx, a.ID)
	if !got.HiddenFor(userID, now) {
		t.Fatal("expected assignment hidden inside the completion window")
	}

	if err := store.ClearHideWindow(ctx, a.ID, userID); err != nil {
		t.Fatalf("ClearHideWindow failed: %v", err)
	}

	got, _ = store.GetByID(ctx, a.ID)
	if got.HiddenFor(userID, now) {
		t.Error("expected assignment visible after undo")
	}
	if got.Completions[userID].Done {
		t.Error("expected done flag cleared with the hide window")
	}
}

func TestExpireHideWindows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := assignmentstore.New(db)
	a, err := store.Create(ctx, models.Assignment{
		SchoolID: primitive.NewObjectID(),
		Grade:    "Grade 4",
		Title:    "Science project",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	now := time.Now().UTC()
	expired := primitive.NewObjectID().Hex()
	active := primitive.NewObjectID().Hex()

	if err := store.SetCompletion(ctx, a.ID, expired, models.Completion{
		Done: true, DoneAt: now.Add(-25 * time.Hour), HideUntil: now.Add(-time.Hour),
	}); err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}
	if err := store.SetCompletion(ctx, a.ID, active, models.Completion{
		Done: true, DoneAt: now, HideUntil: now.Add(models.CompletionWindow),
	}); err != nil {
		t.Fatalf("SetCompletion failed: %v", err)
	}

	touched, err := store.ExpireHideWindows(ctx, now)
	if err != nil {
		t.Fatalf("ExpireHideWindows failed: %v", err)
	}
	if touched != 1 {
		t.Errorf("expected 1 assignment touched, got %d", touched)
	}

	got, err := store.GetByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}

	// Elapsed window: visibility restored, done flag survives.
	if got.HiddenFor(expired, now) {
		t.Error("expired entry should no longer hide the assignment")
	}
	if !got.Completions[expired].Done {
		t.Error("done flag must survive window expiry")
	}

	// The other user's timer is untouched.
	if !got.HiddenFor(active, now) {
		t.Error("active entry should still hide the assignment")
	}
}

func TestExpireHideWindows_NothingToDo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := assignmentstore.New(db)
	touched, err := store.ExpireHideWindows(ctx, time.Now().UTC())
	if err != nil {
		t.Fatalf("ExpireHideWindows failed: %v", err)
	}
	if touched != 0 {
		t.Errorf("expected 0 touched on empty collection, got %d", touched)
	}
}

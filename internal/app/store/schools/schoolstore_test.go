package schoolstore_test

import (
	"testing"

	schoolstore "github.com/homeclass/portal/internal/app/store/schools"
	"github.com/homeclass/portal/internal/app/system/indexes"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/homeclass/portal/internal/testutil"
)

func TestCreate_FoldsName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := schoolstore.New(db)
	sc, err := store.Create(ctx, models.School{Name: "  École Jules Verne ", Level: "primary"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if sc.Name != "École Jules Verne" {
		t.Errorf("name: got %q", sc.Name)
	}
	if sc.NameCI == "" || sc.NameCI == sc.Name {
		t.Errorf("expected folded name_ci, got %q", sc.NameCI)
	}
}

func TestCreate_DuplicateName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// The unique name_ci index enforces registry uniqueness.
	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	store := schoolstore.New(db)
	if _, err := store.Create(ctx, models.School{Name: "Hilltop Primary"}); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	// Case variants fold to the same name_ci.
	_, err := store.Create(ctx, models.School{Name: "HILLTOP primary"})
	if err != schoolstore.ErrDuplicateName {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
}

func TestList_SortedByName(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := schoolstore.New(db)
	for _, name := range []string{"Riverside Secondary", "Hilltop Primary", "Aspen Grove"} {
		if _, err := store.Create(ctx, models.School{Name: name}); err != nil {
			t.Fatalf("Create(%q) failed: %v", name, err)
		}
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 schools, got %d", len(list))
	}
	want := []string{"Aspen Grove", "Hilltop Primary", "Riverside Secondary"}
	for i, name := range want {
		if list[i].Name != name {
			t.Errorf("position %d: got %q, want %q", i, list[i].Name, name)
		}
	}
}

func TestUpdate_MergesFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := schoolstore.New(db)
	sc, err := store.Create(ctx, models.School{Name: "Hilltop Primary", Level: "primary"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Update(ctx, sc.ID, "Hilltop Academy", "secondary", "/uploads/logo.png"); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, sc.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Hilltop Academy" || got.Level != "secondary" || got.LogoURL != "/uploads/logo.png" {
		t.Errorf("update not applied: %+v", got)
	}
}

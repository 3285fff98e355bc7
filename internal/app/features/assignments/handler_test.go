package assignments_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homeclass/portal/internal/app/features/assignments"
	"github.com/homeclass/portal/internal/app/notify"
	"github.com/homeclass/portal/internal/app/system/push"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/homeclass/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *assignments.Handler {
	t.Helper()
	logger := zap.NewNop()
	dispatcher := notify.NewDispatcher(userstore.New(db), push.NewDummySender(), logger)
	return assignments.NewHandler(db, dispatcher, logger)
}

func TestCreate_StaffOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	h := newTestHandler(t, db)

	body := `{"title":"Fractions worksheet","grade":"Grade 4"}`
	req := httptest.NewRequest("POST", "/api/homework", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.StudentSession(school.ID, "Grade 4"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != 403 {
		t.Errorf("expected 403 for student, got %d", rec.Code)
	}
}

func TestCreate_PostsHomework(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	h := newTestHandler(t, db)

	body := `{"title":"Fractions worksheet","grade":"Grade 4","description":"<p>Pages 10-12</p><script>x()</script>","due_date":"2026-09-15"}`
	req := httptest.NewRequest("POST", "/api/homework", strings.NewReader(body))
	req = testutil.WithUser(req, testutil.TeacherSession(school.ID))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	if rec.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if created.SchoolID != school.ID {
		t.Error("assignment not scoped to the teacher's school")
	}
	if strings.Contains(created.Description, "script") {
		t.Errorf("description not sanitized: %q", created.Description)
	}
	if created.DueDate.IsZero() {
		t.Error("due date not parsed")
	}
}

func TestComplete_HidesForActorOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	teacher := fx.CreateTeacher(ctx, "Ms. Frizzle", "frizzle@test.com", school.ID)
	a := fx.CreateAssignment(ctx, "Reading log", "Grade 4", school.ID, teacher)
	h := newTestHandler(t, db)

	student := testutil.StudentSession(school.ID, "Grade 4")

	// Student marks it done.
	req := testutil.NewAuthenticatedRequest("POST", "/api/homework/"+a.ID.Hex()+"/complete", student)
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec := httptest.NewRecorder()
	h.Complete(rec, req)
	if rec.Code != 200 {
		t.Fatalf("Complete: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// The student's list no longer shows it.
	req = testutil.NewAuthenticatedRequest("GET", "/api/homework", student)
	rec = httptest.NewRecorder()
	h.List(rec, req)
	var list []models.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("student list should hide the completed posting, got %d entries", len(list))
	}

	// A classmate still sees it.
	req = testutil.NewAuthenticatedRequest("GET", "/api/homework", testutil.StudentSession(school.ID, "Grade 4"))
	rec = httptest.NewRecorder()
	h.List(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("classmate should still see the posting, got %d entries", len(list))
	}

	// Staff always see everything.
	req = testutil.NewAuthenticatedRequest("GET", "/api/homework", testutil.SessionFor(teacher))
	rec = httptest.NewRecorder()
	h.List(rec, req)
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("staff list should include the posting, got %d entries", len(list))
	}
}

func TestUncomplete_RestoresVisibility(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	teacher := fx.CreateTeacher(ctx, "Ms. Frizzle", "frizzle@test.com", school.ID)
	a := fx.CreateAssignment(ctx, "Spelling list", "Grade 4", school.ID, teacher)
	h := newTestHandler(t, db)

	student := testutil.StudentSession(school.ID, "Grade 4")

	req := testutil.NewAuthenticatedRequest("POST", "/", student)
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec := httptest.NewRecorder()
	h.Complete(rec, req)
	if rec.Code != 200 {
		t.Fatalf("Complete failed: %d", rec.Code)
	}

	req = testutil.NewAuthenticatedRequest("POST", "/", student)
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec = httptest.NewRecorder()
	h.Uncomplete(rec, req)
	if rec.Code != 200 {
		t.Fatalf("Uncomplete failed: %d", rec.Code)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/api/homework", student)
	rec = httptest.NewRecorder()
	h.List(rec, req)
	var list []models.Assignment
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("expected posting visible again after undo, got %d entries", len(list))
	}
}

func TestDelete_EnforcesTenantBoundary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	otherSchool := fx.CreateSchool(ctx, "Riverside Secondary")
	teacher := fx.CreateTeacher(ctx, "Ms. Frizzle", "frizzle@test.com", school.ID)
	a := fx.CreateAssignment(ctx, "Reading log", "Grade 4", school.ID, teacher)
	h := newTestHandler(t, db)

	// A teacher from another school cannot touch it.
	req := testutil.NewAuthenticatedRequest("DELETE", "/", testutil.TeacherSession(otherSchool.ID))
	req = testutil.WithChiURLParam(req, "id", a.ID.Hex())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != 404 {
		t.Errorf("expected 404 across tenants, got %d", rec.Code)
	}
}

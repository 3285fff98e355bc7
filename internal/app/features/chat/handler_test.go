package chat_test

import (
	"net/http/httptest"
	"testing"

	"github.com/homeclass/portal/internal/app/features/chat"
	"github.com/homeclass/portal/internal/app/notify"
	chatstore "github.com/homeclass/portal/internal/app/store/chatmessages"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"github.com/homeclass/portal/internal/app/system/push"
	"github.com/homeclass/portal/internal/domain/models"
	"github.com/homeclass/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *chat.Handler {
	t.Helper()
	logger := zap.NewNop()
	dispatcher := notify.NewDispatcher(userstore.New(db), push.NewDummySender(), logger)
	return chat.NewHandler(db, dispatcher, logger)
}

func TestDelete_StaffOnly(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	sender := fx.CreateParent(ctx, "Pat Whitfield", "pat@test.com", school.ID)
	msg, err := chatstore.New(db).Create(ctx, models.ChatMessage{
		SchoolID: school.ID, SenderID: sender.ID,
		SenderName: sender.FullName, SenderRole: sender.Role, Text: "hello",
	})
	if err != nil {
		t.Fatalf("seed message: %v", err)
	}
	h := newTestHandler(t, db)

	req := testutil.NewAuthenticatedRequest("DELETE", "/", testutil.StudentSession(school.ID, "Grade 4"))
	req = testutil.WithChiURLParam(req, "id", msg.ID.Hex())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != 403 {
		t.Errorf("expected 403 for a student, got %d", rec.Code)
	}
}

func TestDelete_EnforcesTenantBoundary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	otherSchool := fx.CreateSchool(ctx, "Riverside Secondary")
	sender := fx.CreateParent(ctx, "Pat Whitfield", "pat@test.com", school.ID)
	store := chatstore.New(db)
	msg, err := store.Create(ctx, models.ChatMessage{
		SchoolID: school.ID, SenderID: sender.ID,
		SenderName: sender.FullName, SenderRole: sender.Role, Text: "hello",
	})
	if err != nil {
		t.Fatalf("seed message: %v", err)
	}
	h := newTestHandler(t, db)

	// Staff from another school cannot moderate this room.
	req := testutil.NewAuthenticatedRequest("DELETE", "/", testutil.TeacherSession(otherSchool.ID))
	req = testutil.WithChiURLParam(req, "id", msg.ID.Hex())
	rec := httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != 404 {
		t.Errorf("expected 404 across tenants, got %d", rec.Code)
	}

	msgs, err := store.ListBySchool(ctx, school.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("message should have survived the foreign delete, got %d left", len(msgs))
	}

	// Same-school staff can.
	req = testutil.NewAuthenticatedRequest("DELETE", "/", testutil.TeacherSession(school.ID))
	req = testutil.WithChiURLParam(req, "id", msg.ID.Hex())
	rec = httptest.NewRecorder()
	h.Delete(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200 for same-school staff, got %d: %s", rec.Code, rec.Body.String())
	}
	msgs, err = store.ListBySchool(ctx, school.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 0 {
		t.Errorf("message should be gone, got %d left", len(msgs))
	}
}

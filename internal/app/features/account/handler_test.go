package account_test

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/homeclass/portal/internal/app/features/account"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/app/system/status"
	"github.com/homeclass/portal/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T, db *mongo.Database) *account.Handler {
	t.Helper()
	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "test-session", "", false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	return account.NewHandler(db, sm, zap.NewNop())
}

func signupBody(fullName, email, role, schoolID string, extra map[string]string) string {
	fields := map[string]string{
		"full_name": fullName,
		"email":     email,
		"password":  "hunter2hunter2",
		"role":      role,
		"school_id": schoolID,
	}
	for k, v := range extra {
		fields[k] = v
	}
	b, _ := json.Marshal(fields)
	return string(b)
}

func doSignup(t *testing.T, h *account.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)
	return rec
}

func doLogin(t *testing.T, h *account.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	return rec
}

func TestSignup_CreatesAndSignsIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	h := newTestHandler(t, db)

	rec := doSignup(t, h, signupBody("Dana Whitfield", "Dana@Test.com", "teacher", school.ID.Hex(), nil))
	if rec.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload["email"] != "dana@test.com" {
		t.Errorf("email not normalized: %v", payload["email"])
	}
	if payload["school_id"] != school.ID.Hex() {
		t.Errorf("wrong school in session payload: %v", payload["school_id"])
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("signup should set a session cookie")
	}
}

func TestSignup_StudentLinksGuardian(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	fx.CreateParent(ctx, "Pat Whitfield", "pat@test.com", school.ID)
	h := newTestHandler(t, db)

	rec := doSignup(t, h, signupBody("Sam Whitfield", "sam@test.com", "student", school.ID.Hex(),
		map[string]string{"grade": "Grade 4", "parent_email": "Pat@Test.com"}))
	if rec.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	u, err := userstore.New(db).GetByEmail(ctx, "sam@test.com")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if u.ParentID == nil {
		t.Fatal("guardian link not recorded")
	}
	parent, err := userstore.New(db).GetByID(ctx, *u.ParentID)
	if err != nil {
		t.Fatalf("parent lookup failed: %v", err)
	}
	if parent.Email != "pat@test.com" {
		t.Errorf("linked to wrong guardian: %s", parent.Email)
	}
}

func TestSignup_StudentNeedsGrade(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	h := newTestHandler(t, db)

	rec := doSignup(t, h, signupBody("Sam Whitfield", "sam@test.com", "student", school.ID.Hex(), nil))
	if rec.Code != 400 {
		t.Errorf("expected 400 without a grade, got %d", rec.Code)
	}
}

func TestSignup_UnknownSchool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	rec := doSignup(t, h, signupBody("Dana Whitfield", "dana@test.com", "teacher", "ffffffffffffffffffffffff", nil))
	if rec.Code != 400 {
		t.Errorf("expected 400 for unknown school, got %d", rec.Code)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	h := newTestHandler(t, db)

	if rec := doSignup(t, h, signupBody("Dana Whitfield", "dana@test.com", "teacher", school.ID.Hex(), nil)); rec.Code != 201 {
		t.Fatalf("first signup: expected 201, got %d", rec.Code)
	}
	rec := doSignup(t, h, signupBody("Other Dana", "DANA@test.com", "parent", school.ID.Hex(), nil))
	if rec.Code != 409 {
		t.Errorf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestSignup_OnePrincipalPerSchool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	otherSchool := fx.CreateSchool(ctx, "Riverside Secondary")
	h := newTestHandler(t, db)

	if rec := doSignup(t, h, signupBody("Head One", "head1@test.com", "principal", school.ID.Hex(), nil)); rec.Code != 201 {
		t.Fatalf("first principal: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec := doSignup(t, h, signupBody("Head Two", "head2@test.com", "principal", school.ID.Hex(), nil)); rec.Code != 409 {
		t.Errorf("second principal: expected 409, got %d", rec.Code)
	}
	// Another school is free to have its own.
	if rec := doSignup(t, h, signupBody("Head Three", "head3@test.com", "principal", otherSchool.ID.Hex(), nil)); rec.Code != 201 {
		t.Errorf("principal at another school: expected 201, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	h := newTestHandler(t, db)

	if rec := doSignup(t, h, signupBody("Dana Whitfield", "dana@test.com", "teacher", school.ID.Hex(), nil)); rec.Code != 201 {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}

	rec := doLogin(t, h, "Dana@Test.com", "hunter2hunter2")
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(rec.Result().Cookies()) == 0 {
		t.Error("login should set a session cookie")
	}

	if rec := doLogin(t, h, "dana@test.com", "not-the-password"); rec.Code != 401 {
		t.Errorf("wrong password: expected 401, got %d", rec.Code)
	}
	if rec := doLogin(t, h, "nobody@test.com", "hunter2hunter2"); rec.Code != 401 {
		t.Errorf("unknown email: expected 401, got %d", rec.Code)
	}
}

func TestLogin_DisabledAccount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fx := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	school := fx.CreateSchool(ctx, "Hilltop Primary")
	h := newTestHandler(t, db)

	if rec := doSignup(t, h, signupBody("Dana Whitfield", "dana@test.com", "teacher", school.ID.Hex(), nil)); rec.Code != 201 {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}
	_, err := db.Collection("users").UpdateOne(ctx,
		bson.M{"email": "dana@test.com"},
		bson.M{"$set": bson.M{"status": status.Disabled}})
	if err != nil {
		t.Fatalf("disable failed: %v", err)
	}

	if rec := doLogin(t, h, "dana@test.com", "hunter2hunter2"); rec.Code != 403 {
		t.Errorf("expected 403 for a disabled account, got %d", rec.Code)
	}
}

func TestMe_RequiresSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newTestHandler(t, db)

	req := httptest.NewRequest("GET", "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	h.Me(rec, req)
	if rec.Code != 401 {
		t.Errorf("expected 401 when anonymous, got %d", rec.Code)
	}

	req = testutil.NewAuthenticatedRequest("GET", "/api/auth/me", testutil.TeacherSession(primitive.NewObjectID()))
	rec = httptest.NewRecorder()
	h.Me(rec, req)
	if rec.Code != 200 {
		t.Errorf("expected 200 with a session, got %d", rec.Code)
	}
}

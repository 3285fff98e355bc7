// internal/app/features/account/account.go
package account

import (
	"errors"
	"net/http"

	"github.com/homeclass/portal/internal/app/features/shared/respond"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/app/system/normalize"
	"github.com/homeclass/portal/internal/app/system/status"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type signupRequest struct {
	FullName    string `json:"full_name" validate:"required,max=120"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
	Role        string `json:"role" validate:"required,oneof=parent teacher student principal"`
	SchoolID    string `json:"school_id" validate:"required,len=24,hexadecimal"`
	Grade       string `json:"grade,omitempty" validate:"omitempty,max=20"`
	ParentEmail string `json:"parent_email,omitempty" validate:"omitempty,email"`
}

// Signup handles POST /api/auth/signup. New accounts are active
// immediately; a school can hold at most one principal.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	schoolID, err := primitive.ObjectIDFromHex(req.SchoolID)
	if err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid school id")
		return
	}
	if _, err := h.Schools.GetByID(r.Context(), schoolID); err != nil {
		respond.Error(w, http.StatusBadRequest, "unknown school")
		return
	}

	if req.Role == models.RoleStudent && req.Grade == "" {
		respond.Error(w, http.StatusBadRequest, "students must pick a grade")
		return
	}

	if req.Role == models.RolePrincipal {
		exists, err := h.Users.PrincipalExists(r.Context(), schoolID)
		if err != nil {
			h.Log.Error("principal lookup failed", zap.Error(err))
			respond.Error(w, http.StatusInternalServerError, "signup failed")
			return
		}
		if exists {
			respond.Error(w, http.StatusConflict, "this school already has a principal")
			return
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.Log.Error("password hash failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	u := models.User{
		FullName:     normalize.Name(req.FullName),
		Email:        normalize.Email(req.Email),
		AuthMethod:   "password",
		Role:         req.Role,
		Status:       status.Active,
		SchoolID:     &schoolID,
		Grade:        normalize.Grade(req.Grade),
		PasswordHash: string(hash),
	}

	// Students may link their guardian at signup by email. The link is
	// optional and silently skipped when no matching parent exists.
	if req.Role == models.RoleStudent && req.ParentEmail != "" {
		parent, err := h.Users.GetByEmail(r.Context(), normalize.Email(req.ParentEmail))
		if err == nil && parent != nil && parent.Role == models.RoleParent &&
			parent.SchoolID != nil && *parent.SchoolID == schoolID {
			u.ParentID = &parent.ID
		}
	}

	created, err := h.Users.Create(r.Context(), u)
	if err != nil {
		if errors.Is(err, userstore.ErrDuplicateEmail) {
			respond.Error(w, http.StatusConflict, "an account with this email already exists")
			return
		}
		h.Log.Error("signup failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "signup failed")
		return
	}

	h.signIn(w, r, created)
	h.Log.Info("account created",
		zap.String("user_id", created.ID.Hex()),
		zap.String("role", created.Role))
	respond.JSON(w, http.StatusCreated, sessionPayload(created))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	email := normalize.Email(req.Email)
	if ok, reason := h.Limiter.Check(r, email); !ok {
		respond.Error(w, http.StatusTooManyRequests, reason)
		return
	}

	u, err := h.Users.GetByEmail(r.Context(), email)
	if err != nil && err != mongo.ErrNoDocuments {
		h.Log.Error("login lookup failed", zap.Error(err))
		respond.Error(w, http.StatusInternalServerError, "login failed")
		return
	}
	if u == nil || u.PasswordHash == "" {
		respond.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		respond.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	if u.Status == status.Disabled {
		respond.Error(w, http.StatusForbidden, "this account is disabled")
		return
	}

	h.Limiter.ResetEmail(email)
	h.signIn(w, r, *u)
	respond.JSON(w, http.StatusOK, sessionPayload(*u))
}

// Logout handles POST /api/auth/logout. Read watermarks are cleared so
// the next session starts fresh, matching the sign-out contract.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if su, ok := auth.CurrentUser(r); ok {
		if id, err := primitive.ObjectIDFromHex(su.ID); err == nil {
			if err := h.Readmarks.Clear(r.Context(), id); err != nil {
				h.Log.Warn("clearing read state failed", zap.Error(err))
			}
		}
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Warn("sign-out failed", zap.Error(err))
	}
	respond.JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Me handles GET /api/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	su, ok := auth.CurrentUser(r)
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "not signed in")
		return
	}
	respond.JSON(w, http.StatusOK, su)
}

func (h *Handler) signIn(w http.ResponseWriter, r *http.Request, u models.User) {
	su := auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.FullName,
		Email: u.Email,
		Role:  u.Role,
		Grade: u.Grade,
	}
	if u.SchoolID != nil {
		su.SchoolID = u.SchoolID.Hex()
	}
	if err := h.SessionMgr.SignIn(w, r, su); err != nil {
		h.Log.Error("session write failed", zap.Error(err))
	}
}

func sessionPayload(u models.User) map[string]any {
	out := map[string]any{
		"id":        u.ID.Hex(),
		"full_name": u.FullName,
		"email":     u.Email,
		"role":      u.Role,
		"grade":     u.Grade,
	}
	if u.SchoolID != nil {
		out["school_id"] = u.SchoolID.Hex()
	}
	return out
}

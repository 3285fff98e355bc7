// internal/app/features/account/handler.go
package account

import (
	readmarkstore "github.com/homeclass/portal/internal/app/store/readmarks"
	schoolstore "github.com/homeclass/portal/internal/app/store/schools"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"github.com/homeclass/portal/internal/app/system/auth"
	"github.com/homeclass/portal/internal/app/system/ratelimit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the signup/login/logout endpoints.
type Handler struct {
	Users      *userstore.Store
	Schools    *schoolstore.Store
	Readmarks  *readmarkstore.Store
	SessionMgr *auth.SessionManager
	Limiter    *ratelimit.LoginLimiter
	Log        *zap.Logger
}

// NewHandler constructs an auth Handler.
func NewHandler(db *mongo.Database, sm *auth.SessionManager, logger *zap.Logger) *Handler {
	return &Handler{
		Users:      userstore.New(db),
		Schools:    schoolstore.New(db),
		Readmarks:  readmarkstore.New(db),
		SessionMgr: sm,
		Limiter:    ratelimit.NewLoginLimiter(),
		Log:        logger,
	}
}

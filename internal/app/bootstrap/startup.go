// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/dalemusser/waffle/config"
	assignmentstore "github.com/homeclass/portal/internal/app/store/assignments"
	"github.com/homeclass/portal/internal/app/store/oauthstate"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"github.com/homeclass/portal/internal/app/system/normalize"
	"github.com/homeclass/portal/internal/app/system/workers"
	"github.com/homeclass/portal/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	hideSweepInterval    = 5 * time.Minute
	oauthCleanupInterval = time.Hour
)

// Background workers started in Startup and stopped in Shutdown.
var (
	hideSweep    *workers.HideWindowSweep
	oauthCleanup *workers.OAuthStateCleanup
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built:
// the upload directory, superadmin promotion, and background workers.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if err := os.MkdirAll(appCfg.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	if appCfg.SuperAdminEmail != "" {
		if err := promoteSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, logger); err != nil {
			return err
		}
	}

	hideSweep = workers.NewHideWindowSweep(assignmentstore.New(deps.MongoDatabase), logger, hideSweepInterval)
	hideSweep.Start()

	oauthCleanup = workers.NewOAuthStateCleanup(oauthstate.New(deps.MongoDatabase), logger, oauthCleanupInterval)
	oauthCleanup.Start()

	return nil
}

// promoteSuperAdmin flips an existing account to the superadmin role.
// A missing account is logged, not fatal: the operator may not have
// signed up yet.
func promoteSuperAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	email = normalize.Email(email)
	u, err := userstore.New(deps.MongoDatabase).GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("superadmin lookup: %w", err)
	}
	if u == nil {
		logger.Warn("superadmin account not found; sign up first, then restart",
			zap.String("email", email))
		return nil
	}
	if u.Role == models.RoleSuperAdmin {
		return nil
	}

	_, err = deps.MongoDatabase.Collection("users").UpdateOne(ctx,
		bson.M{"_id": u.ID},
		bson.M{"$set": bson.M{
			"role":       models.RoleSuperAdmin,
			"updated_at": time.Now().UTC(),
		}, "$unset": bson.M{"school_id": ""}})
	if err != nil {
		return fmt.Errorf("superadmin promote: %w", err)
	}
	logger.Info("promoted superadmin", zap.String("email", email))
	return nil
}

// internal/app/features/alerts/handler.go
package alerts

import (
	"github.com/homeclass/portal/internal/app/notify"
	alertstore "github.com/homeclass/portal/internal/app/store/alerts"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the absence/health alert endpoints.
type Handler struct {
	Alerts     *alertstore.Store
	Users      *userstore.Store
	Dispatcher *notify.Dispatcher
	Log        *zap.Logger
}

// NewHandler constructs an alerts Handler.
func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Alerts:     alertstore.New(db),
		Users:      userstore.New(db),
		Dispatcher: dispatcher,
		Log:        logger,
	}
}

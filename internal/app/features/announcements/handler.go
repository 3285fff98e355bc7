// internal/app/features/announcements/handler.go
package announcements

import (
	"github.com/homeclass/portal/internal/app/notify"
	announcementstore "github.com/homeclass/portal/internal/app/store/announcements"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the staff announcement endpoints. Every route is
// staff-only; parents and students never see this surface.
type Handler struct {
	Announcements *announcementstore.Store
	Dispatcher    *notify.Dispatcher
	Log           *zap.Logger
}

// NewHandler constructs an announcements Handler.
func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Announcements: announcementstore.New(db),
		Dispatcher:    dispatcher,
		Log:           logger,
	}
}

// internal/app/features/state/handler.go
package state

import (
	"github.com/homeclass/portal/internal/app/feedsync"
	readmarkstore "github.com/homeclass/portal/internal/app/store/readmarks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the per-user UI state endpoints: active tab, open
// conversation, and the read watermarks both imply. Tab switches are
// mirrored into the user's live feed sessions so the socket's unread
// flags match the persisted watermarks.
type Handler struct {
	Readmarks *readmarkstore.Store
	Sessions  *feedsync.Registry
	Log       *zap.Logger
}

// NewHandler constructs a state Handler.
func NewHandler(db *mongo.Database, sessions *feedsync.Registry, logger *zap.Logger) *Handler {
	return &Handler{Readmarks: readmarkstore.New(db), Sessions: sessions, Log: logger}
}

// internal/app/features/chat/handler.go
package chat

import (
	"github.com/homeclass/portal/internal/app/notify"
	chatstore "github.com/homeclass/portal/internal/app/store/chatmessages"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the school chat endpoints.
type Handler struct {
	Messages   *chatstore.Store
	Dispatcher *notify.Dispatcher
	Log        *zap.Logger
}

// NewHandler constructs a chat Handler.
func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Messages:   chatstore.New(db),
		Dispatcher: dispatcher,
		Log:        logger,
	}
}

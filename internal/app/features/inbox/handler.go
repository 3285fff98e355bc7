// internal/app/features/inbox/handler.go
package inbox

import (
	"github.com/homeclass/portal/internal/app/notify"
	conversationstore "github.com/homeclass/portal/internal/app/store/conversations"
	messagestore "github.com/homeclass/portal/internal/app/store/directmessages"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the direct-messaging endpoints.
type Handler struct {
	Conversations *conversationstore.Store
	Messages      *messagestore.Store
	Users         *userstore.Store
	Dispatcher    *notify.Dispatcher
	Log           *zap.Logger
}

// NewHandler constructs an inbox Handler.
func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Conversations: conversationstore.New(db),
		Messages:      messagestore.New(db),
		Users:         userstore.New(db),
		Dispatcher:    dispatcher,
		Log:           logger,
	}
}

// internal/app/features/events/handler.go
package events

import (
	eventstore "github.com/homeclass/portal/internal/app/store/events"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the school calendar endpoints.
type Handler struct {
	Events *eventstore.Store
	Log    *zap.Logger
}

// NewHandler constructs an events Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Events: eventstore.New(db), Log: logger}
}

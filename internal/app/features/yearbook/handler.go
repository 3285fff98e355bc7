// internal/app/features/yearbook/handler.go
package yearbook

import (
	yearbookstore "github.com/homeclass/portal/internal/app/store/yearbook"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the class journal endpoints.
type Handler struct {
	Entries *yearbookstore.Store
	Log     *zap.Logger
}

// NewHandler constructs a yearbook Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Entries: yearbookstore.New(db), Log: logger}
}

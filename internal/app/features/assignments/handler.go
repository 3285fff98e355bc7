// internal/app/features/assignments/handler.go
package assignments

import (
	"github.com/homeclass/portal/internal/app/notify"
	assignmentstore "github.com/homeclass/portal/internal/app/store/assignments"
	userstore "github.com/homeclass/portal/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the homework endpoints.
type Handler struct {
	Assignments *assignmentstore.Store
	Users       *userstore.Store
	Dispatcher  *notify.Dispatcher
	Log         *zap.Logger
}

// NewHandler constructs an assignments Handler.
func NewHandler(db *mongo.Database, dispatcher *notify.Dispatcher, logger *zap.Logger) *Handler {
	return &Handler{
		Assignments: assignmentstore.New(db),
		Users:       userstore.New(db),
		Dispatcher:  dispatcher,
		Log:         logger,
	}
}

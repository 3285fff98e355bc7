// internal/app/features/schools/handler.go
package schools

import (
	schoolstore "github.com/homeclass/portal/internal/app/store/schools"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler owns the school registry endpoints.
type Handler struct {
	Schools *schoolstore.Store
	Log     *zap.Logger
}

// NewHandler constructs a schools Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{Schools: schoolstore.New(db), Log: logger}
}

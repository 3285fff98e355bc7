// internal/app/features/uploads/handler.go
package uploads

import (
	"go.uber.org/zap"
)

// Handler owns the file upload endpoint. Files land in Dir under a
// random name and are served back read-only from /uploads/.
type Handler struct {
	Dir string
	Log *zap.Logger
}

// NewHandler constructs an uploads Handler writing into dir.
func NewHandler(dir string, logger *zap.Logger) *Handler {
	return &Handler{Dir: dir, Log: logger}
}

// internal/app/features/feed/handler.go
package feed

import (
	"github.com/homeclass/portal/internal/app/feedsync"
	"go.uber.org/zap"
)

// Handler owns the realtime feed socket. Each connection gets its own
// feedsync.Session; there is no shared hub because every client's view
// is tenant- and role-specific. Live sessions are tracked in Sessions
// so REST tab switches reach them.
type Handler struct {
	Deps     feedsync.Deps
	Sessions *feedsync.Registry
	Log      *zap.Logger
}

// NewHandler constructs a feed Handler around the store dependencies
// the sessions read from.
func NewHandler(deps feedsync.Deps, sessions *feedsync.Registry, logger *zap.Logger) *Handler {
	return &Handler{Deps: deps, Sessions: sessions, Log: logger}
}

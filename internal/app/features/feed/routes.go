// internal/app/features/feed/routes.go
package feed

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the realtime feed socket.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Serve)
}

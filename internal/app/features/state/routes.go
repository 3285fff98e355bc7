// internal/app/features/state/routes.go
package state

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the UI state routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/tab", h.SetTab)
	r.Post("/conversation", h.SetConversation)
}

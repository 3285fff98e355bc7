// internal/app/features/chat/routes.go
package chat

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the school chat routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Post)
	r.Delete("/{id}", h.Delete)
}

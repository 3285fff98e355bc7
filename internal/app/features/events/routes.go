// internal/app/features/events/routes.go
package events

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the calendar routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Delete("/{id}", h.Delete)
}

// internal/app/features/assignments/routes.go
package assignments

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the homework routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/complete", h.Complete)
	r.Post("/{id}/uncomplete", h.Uncomplete)
	r.Delete("/{id}", h.Delete)
}

// internal/app/features/schools/routes.go
package schools

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the school registry routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

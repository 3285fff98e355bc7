// internal/app/features/yearbook/routes.go
package yearbook

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the class journal routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/{id}/like", h.Like)
	r.Delete("/{id}", h.Delete)
}

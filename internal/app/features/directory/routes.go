// internal/app/features/directory/routes.go
package directory

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the directory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/dependents", h.Dependents)
}

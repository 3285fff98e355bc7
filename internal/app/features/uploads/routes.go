// internal/app/features/uploads/routes.go
package uploads

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the upload route.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.Upload)
}

// internal/app/features/alerts/routes.go
package alerts

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the alert routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.LogAlert)
	r.Post("/{id}/comments", h.Comment)
	r.Post("/{id}/resolve", h.Resolve)
}

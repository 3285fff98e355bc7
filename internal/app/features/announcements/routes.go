// internal/app/features/announcements/routes.go
package announcements

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountRoutes mounts the announcement routes. The staff gate is
// applied here so no handler needs its own role check.
func (h *Handler) MountRoutes(r chi.Router, requireStaff func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(requireStaff)
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Delete("/{id}", h.Delete)
	})
}

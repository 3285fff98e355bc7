// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the Google OAuth routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.ServeLogin)
	r.Get("/callback", h.ServeCallback)
}

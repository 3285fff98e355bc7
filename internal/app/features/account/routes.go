// internal/app/features/account/routes.go
package account

import "github.com/go-chi/chi/v5"

// MountRoutes mounts the auth endpoints. Signup and login are public;
// logout and me run behind the session middleware at the router level.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/me", h.Me)
}
